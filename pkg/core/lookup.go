/*
Copyright 2026 David Arnold
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at
    http://www.apache.org/licenses/LICENSE-2.0
Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package core

import (
	"encoding/json"
	"strconv"
	"strings"
)

// LookupValue walks a dotted path ("authRecord.subscriptionId") through
// nested JSON objects. It never panics; any missing key or non-object step
// reports false. An empty path returns v itself.
func LookupValue(v any, path string) (any, bool) {
	if path == "" {
		return v, v != nil
	}
	cur := v
	for _, key := range strings.Split(path, ".") {
		m := asObject(cur)
		if m == nil {
			return nil, false
		}
		next, ok := m[key]
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, cur != nil
}

// Lookup returns the scalar at path as a string. Strings are returned as-is
// and numbers as their decimal text; objects, arrays, booleans, null and
// missing keys report false.
func Lookup(v any, path string) (string, bool) {
	val, ok := LookupValue(v, path)
	if !ok {
		return "", false
	}
	return scalarString(val)
}

// LookupString is Lookup with absence mapped to "".
func LookupString(v any, path string) string {
	s, _ := Lookup(v, path)
	return s
}

// LookupList returns the array at path, or nil.
func LookupList(v any, path string) []any {
	val, ok := LookupValue(v, path)
	if !ok {
		return nil
	}
	l, _ := val.([]any)
	return l
}

// LookupObject returns the object at path, or nil.
func LookupObject(v any, path string) map[string]any {
	val, ok := LookupValue(v, path)
	if !ok {
		return nil
	}
	return asObject(val)
}

func asObject(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		return t
	case Host:
		return t
	}
	return nil
}

func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	}
	return "", false
}

// isEmptyValue mirrors JSON truthiness: null, "", false, 0, {} and [] are
// empty.
func isEmptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case json.Number:
		f, err := t.Float64()
		return err == nil && f == 0
	case float64:
		return t == 0
	case map[string]any:
		return len(t) == 0
	case Host:
		return len(t) == 0
	case []any:
		return len(t) == 0
	}
	return false
}
