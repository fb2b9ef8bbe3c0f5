// Package profile loads HCL run-profile files. A profile carries the same
// settings as the command line (corpus location, compiler invocation,
// execution limits, report options); flags always win over profile values.
// Profile attributes may reference process environment variables through the
// `env` object, e.g. `root = env.MSL_HOME`.
package profile
