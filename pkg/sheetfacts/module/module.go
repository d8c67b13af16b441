// Package module implements the Ansible module protocol for sheetfacts:
// the src/sheets arguments and the changed/message/facts_json response.
package module

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cast"
	"github.com/ukaji3/sheetfacts-go/pkg/sheetfacts"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Name is the module name used in diagnostics.
const Name = "sheetfacts"

// Library names the workbook reader dependency.
const Library = "excelize"

var supported = []string{"sheets", "src"}

// Args are the module parameters.
type Args struct {
	// Src is the workbook path.
	Src string
	// Sheets optionally restricts and orders the sheets to read.
	Sheets []string
}

// ParseArgs decodes and validates the module arguments file. Every problem
// found is reported, not just the first.
func ParseArgs(data []byte) (Args, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Args{}, fmt.Errorf("parse module arguments: %w", err)
	}

	var (
		args        Args
		hasSrc      bool
		errs        *multierror.Error
		unsupported []string
	)
	for key, value := range raw {
		switch {
		case key == "src":
			if value == nil {
				continue
			}
			hasSrc = true
			src, err := cast.ToStringE(value)
			if err != nil {
				errs = multierror.Append(errs, fmt.Errorf("argument src is of type %T and we were unable to convert to str", value))
				continue
			}
			args.Src = src
		case key == "sheets":
			sheets, err := toList(value)
			if err != nil {
				errs = multierror.Append(errs, fmt.Errorf("argument sheets: %w", err))
				continue
			}
			args.Sheets = sheets
		case strings.HasPrefix(key, "_ansible_"):
		default:
			unsupported = append(unsupported, key)
		}
	}

	// An empty src is present; opening it fails later
	if !hasSrc {
		errs = multierror.Append(errs, fmt.Errorf("missing required arguments: src"))
	}
	if len(unsupported) > 0 {
		sort.Strings(unsupported)
		errs = multierror.Append(errs, fmt.Errorf("Unsupported parameters for (%s) module: %s. Supported parameters include: %s",
			Name, strings.Join(unsupported, ", "), strings.Join(supported, ", ")))
	}
	return args, errs.ErrorOrNil()
}

// toList converts a list argument. A string is split on commas.
func toList(value interface{}) ([]string, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string:
		if v == "" {
			return nil, nil
		}
		parts := strings.Split(v, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts, nil
	case []interface{}:
		return cast.ToStringSliceE(v)
	}
	return nil, fmt.Errorf("value of type %T is not a list", value)
}

// Response is the JSON document a module prints.
type Response struct {
	Changed   bool        `json:"changed"`
	Failed    bool        `json:"failed,omitempty"`
	Msg       string      `json:"msg,omitempty"`
	Message   string      `json:"message"`
	FactsJSON interface{} `json:"facts_json"`
}

// Execute runs the extraction described by args.
func Execute(ex *sheetfacts.Extractor, args Args) Response {
	res := ex.Run(args.Src, sheetfacts.Options{Sheets: args.Sheets})
	if res.Status != sheetfacts.StatusOK {
		return Fail(res.Message)
	}
	return Response{
		Message:   res.Message,
		FactsJSON: res.Facts,
	}
}

// Fail returns a failed response carrying msg.
func Fail(msg string) Response {
	return Response{
		Failed:    true,
		Msg:       msg,
		Message:   msg,
		FactsJSON: "",
	}
}

// MissingDependency returns the response for an unusable workbook reader.
func MissingDependency() Response {
	return Fail("Missing required library: " + Library)
}

// Write prints the response as a single line of JSON.
func (r Response) Write(w io.Writer) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
