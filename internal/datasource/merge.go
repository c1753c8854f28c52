package datasource

// Merge deep-merges src into dst and returns dst. The merge is right-biased:
// on conflicting keys the src value wins. Nested mappings merge key-wise and
// recursively; arrays and scalars are replaced outright, never concatenated.
func Merge(dst, src map[string]interface{}) map[string]interface{} {
	if dst == nil {
		dst = make(map[string]interface{}, len(src))
	}

	for key, value := range src {
		srcMap, srcIsMap := value.(map[string]interface{})
		dstMap, dstIsMap := dst[key].(map[string]interface{})

		if srcIsMap && dstIsMap {
			dst[key] = Merge(dstMap, srcMap)
			continue
		}

		dst[key] = value
	}

	return dst
}
