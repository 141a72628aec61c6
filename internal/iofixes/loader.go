// Package iofixes loads declarative fix rules from YAML files.
package iofixes

import (
	"fmt"
	"os"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/occdb/pkg/errcode"
	"github.com/gnames/occdb/pkg/fixes"
	"gopkg.in/yaml.v3"
)

// fixesFile is the YAML document shape: a top-level `fixes` list.
type fixesFile struct {
	Fixes []fixes.Rule `yaml:"fixes"`
}

// Load reads fix rules from a YAML file and validates each one.
func Load(path string) ([]fixes.Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, readError(path, err)
	}

	var doc fixesFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, readError(path, err)
	}

	for _, r := range doc.Fixes {
		if err := r.Validate(); err != nil {
			return nil, err
		}
	}
	return doc.Fixes, nil
}

func readError(path string, err error) error {
	msg := "Cannot read fixes file <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.FixesReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %w", fn, err),
	}
}
