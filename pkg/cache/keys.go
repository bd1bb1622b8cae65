package cache

// AnalysisKey builds the cache key for cflow output. The key covers the
// source bytes, the full cflow argument list and the cflow version, so
// any change to the input, the flags or the installed tool is a miss.
func AnalysisKey(source []byte, args []string, version string) string {
	return hashKey("analysis:v1", Hash(source), args, version)
}

// RenderKey builds the cache key for a rendered image from the DOT
// document it was produced from plus the format and layout engine.
func RenderKey(doc []byte, format, layout string) string {
	return hashKey("render:v1", Hash(doc), format, layout)
}
