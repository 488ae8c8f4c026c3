package main

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func readFormat(value string, allowed ...string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(value))
	for _, a := range allowed {
		if f == a {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported format %q (must be %s)", value, strings.Join(allowed, " or "))
}
