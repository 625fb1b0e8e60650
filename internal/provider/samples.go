package provider

import (
	"embed"
	"fmt"

	"github.com/codedrill/codedrill/internal/model"
)

//go:embed samples
var sampleFS embed.FS

var sampleFiles = map[model.Language]string{
	model.LangPython:     "samples/sample.py",
	model.LangCpp:        "samples/sample.cpp",
	model.LangJava:       "samples/sample.java",
	model.LangRust:       "samples/sample.rs",
	model.LangJavaScript: "samples/sample.js",
}

// SampleCode returns the built-in snippet for a language. Unknown
// languages fall back to the Python sample.
func SampleCode(lang model.Language) string {
	name, ok := sampleFiles[lang]
	if !ok {
		name = sampleFiles[model.LangPython]
	}
	data, err := sampleFS.ReadFile(name)
	if err != nil {
		// Embedded files are part of the binary; a missing one is a build defect.
		panic(fmt.Sprintf("provider: missing embedded sample %s: %v", name, err))
	}
	return string(data)
}
