// Package dflags provides typed command-line flags that can be declared in
// any package and parsed in one place.
//
// A flag is a *Flag[T] registered in a Registry under an owner (usually the
// declaring package or struct) and a name. A Parser walks the arguments,
// resolves each flag token through the Registry and converts its value with
// a conversion.Table:
//
//	r := dflags.NewRegistry()
//	verbose := dflags.Define(r, "app", "verbose", false)
//	level := dflags.Define(r, "app", "level", int64(1),
//		dflags.WithDescription("compression level"))
//
//	res, err := dflags.NewParser(r).Parse([]string{"--verbose", "--level", "9", "input.txt"})
//	// verbose.Get() == true, level.Get() == 9, res.Args == []string{"input.txt"}
//
// Supported forms are --name, -name, --name=value, --noname for booleans
// and --owner.name to pick one of several flags sharing a name.
//
// For small programs the package-level helpers (String, Bool, Int64, ...)
// declare flags in a process-wide registry owned by the calling package, and
// Init parses os.Args against it.
package dflags
