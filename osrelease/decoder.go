package osrelease

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/getdocker/getdocker/errstring"
)

const tag = "osrelease"

var fieldsByTag map[string]string // lookup table for reflect to get fields by tag

// ErrParseOSRelease is returned when an error occurs parsing an os-release file.
var ErrParseOSRelease = errstring.New("parse os-release")

// Decode decodes an os-release file from an io.Reader.
func Decode(r io.Reader) (*Facts, error) {
	facts := &Facts{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := parts[0]
		value := parts[1]
		if v, err := strconv.Unquote(value); err == nil {
			value = v
		}

		setField(facts, key, value)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Join(ErrParseOSRelease, err)
	}

	// Machine readable identifiers are specified to be lower-case, but not
	// every derivative plays by the rules.
	facts.ID = strings.ToLower(facts.ID)
	facts.IDLike = strings.ToLower(facts.IDLike)
	facts.VersionCodename = strings.ToLower(facts.VersionCodename)

	if facts.ID == "" {
		return nil, fmt.Errorf("%w: missing required ID field", ErrParseOSRelease)
	}

	return facts, nil
}

// DecodeString decodes an os-release file from a string.
func DecodeString(s string) (*Facts, error) {
	return Decode(strings.NewReader(s))
}

func setField(facts *Facts, key, value string) {
	if fieldsByTag == nil {
		fieldsByTag = buildTable()
	}

	fn, ok := fieldsByTag[key]
	if !ok {
		if facts.Extra == nil {
			facts.Extra = make(map[string]string)
		}
		facts.Extra[key] = value
		return
	}

	field, ok := reflect.TypeOf(facts).Elem().FieldByName(fn)
	if !ok {
		return
	}

	f := reflect.ValueOf(facts).Elem().FieldByName(field.Name)
	if !f.CanSet() {
		return
	}
	f.SetString(value)
}

func buildTable() map[string]string {
	table := make(map[string]string)
	rt := reflect.TypeOf(Facts{})

	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if v := f.Tag.Get(tag); v != "" {
			table[v] = f.Name
		}
	}

	return table
}
