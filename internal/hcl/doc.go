// Package hcl provides the HCL implementation of config.Loader. It plays the
// part of a compiler front end: it parses `record` blocks, evaluates their
// element expressions, and computes the shape key for every literal,
// including nested ones.
//
// A literal file looks like this:
//
//	record "point" {
//	  positional = [1, "hi"]
//	  named = {
//	    b = 2
//	  }
//	}
//
// Nested HCL tuples become positional-only literals and nested HCL objects
// become named-only literals.
package hcl
