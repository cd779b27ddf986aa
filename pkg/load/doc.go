// Package load builds node trees from YAML and CBOR documents and writes
// them back out.
//
// Parse functions work on bytes, Load functions read a file first:
//
//	root, err := load.LoadMapping("site.yaml")
//	if err != nil {
//	    return err
//	}
//	root.OnChange(func(path model.Path, value model.Node) { ... })
//
// Documents are decoded into plain values and boxed with model.Box, so
// numbers become float64 and map keys become strings.
package load
