package stdlib

import (
	"fmt"
	"regexp"

	"github.com/kristofer/cynicscript/token"
	"github.com/kristofer/cynicscript/value"
)

// regexFns implements the `ds` group's pattern matching, grounded on
// kristofer/smog/pkg/vm/primitives.go's regexMatch/regexFindAll/
// regexReplace.
func regexFns() map[string]value.NativeFn {
	return map[string]value.NativeFn{
		"ds.regexMatch":   dsRegexMatch,
		"ds.regexFindAll": dsRegexFindAll,
		"ds.regexReplace": dsRegexReplace,
	}
}

func dsRegexMatch(args []value.Value, _ token.Token) (value.Value, bool, error) {
	pattern, err := argString(args, 0, "ds.regexMatch")
	if err != nil {
		return value.Value{}, false, err
	}
	text, err := argString(args, 1, "ds.regexMatch")
	if err != nil {
		return value.Value{}, false, err
	}
	matched, err := regexp.MatchString(pattern, text)
	if err != nil {
		return value.Value{}, false, fmt.Errorf("ds.regexMatch: invalid pattern: %v", err)
	}
	return value.NewBool(matched), true, nil
}

func dsRegexFindAll(args []value.Value, _ token.Token) (value.Value, bool, error) {
	pattern, err := argString(args, 0, "ds.regexFindAll")
	if err != nil {
		return value.Value{}, false, err
	}
	text, err := argString(args, 1, "ds.regexFindAll")
	if err != nil {
		return value.Value{}, false, err
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return value.Value{}, false, fmt.Errorf("ds.regexFindAll: invalid pattern: %v", err)
	}
	matches := re.FindAllString(text, -1)
	elems := make([]value.Value, len(matches))
	for i, m := range matches {
		elems[i] = str(m)
	}
	return value.NewObject(value.NewArray(elems)), true, nil
}

func dsRegexReplace(args []value.Value, _ token.Token) (value.Value, bool, error) {
	pattern, err := argString(args, 0, "ds.regexReplace")
	if err != nil {
		return value.Value{}, false, err
	}
	text, err := argString(args, 1, "ds.regexReplace")
	if err != nil {
		return value.Value{}, false, err
	}
	replacement, err := argString(args, 2, "ds.regexReplace")
	if err != nil {
		return value.Value{}, false, err
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return value.Value{}, false, fmt.Errorf("ds.regexReplace: invalid pattern: %v", err)
	}
	return str(re.ReplaceAllString(text, replacement)), true, nil
}
