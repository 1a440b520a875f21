// Package factory provides small generic registries keyed by name.
//
// Registry stores arbitrary values (typically constructors) with explicit
// duplicate handling: Register rejects an existing name, Replace overwrites
// it on purpose. ModuleRegistry builds modules from a type string and a map
// of raw settings, decoded into typed structs with Decode.
//
// Example usage:
//
//	reg := factory.NewModuleRegistry[io.Reader]()
//	reg.Register("file", func(conf map[string]any) (io.Reader, error) {
//	    var c struct{ Path string `json:"path"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return os.Open(c.Path)
//	})
//	r, err := reg.Create(factory.ModuleConfig{Type: "file", Conf: map[string]any{"path": "foo"}})
package factory
