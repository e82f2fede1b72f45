/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

// Field limits of a Book, in characters.
const (
	MaxTitleLength  = 500
	MaxAuthorLength = 200
)

// Violation messages reported by Validate.
const (
	MsgNilObject      = "Object cannot be null"
	MsgTitleRequired  = "Title is required"
	MsgAuthorRequired = "Author is required"
	MsgISBNRequired   = "ISBN is required"
)

var (
	MsgTitleLength  = fmt.Sprintf("Title must be between 1 and %d characters", MaxTitleLength)
	MsgAuthorLength = fmt.Sprintf("Author must be between 1 and %d characters", MaxAuthorLength)
)

type fieldRule struct {
	value   func(*Book) string
	check   func(string) bool
	message string
}

// Rules run in table order and are all evaluated.
var bookRules = []fieldRule{
	{func(b *Book) string { return b.Title }, required, MsgTitleRequired},
	{func(b *Book) string { return b.Title }, maxLength(MaxTitleLength), MsgTitleLength},
	{func(b *Book) string { return b.Author }, required, MsgAuthorRequired},
	{func(b *Book) string { return b.Author }, maxLength(MaxAuthorLength), MsgAuthorLength},
	{func(b *Book) string { return b.ISBN }, required, MsgISBNRequired},
}

// Validate checks b against the field rules and returns every violated rule's message.
// A nil book yields a single MsgNilObject violation.
func Validate(b *Book) (bool, []string) {
	if b == nil {
		return false, []string{MsgNilObject}
	}

	var errs []string
	for _, rule := range bookRules {
		if rule.check(rule.value(b)) {
			continue
		}
		if !slices.Contains(errs, rule.message) {
			errs = append(errs, rule.message)
		}
	}
	return len(errs) == 0, errs
}

func required(s string) bool {
	return strings.TrimSpace(s) != ""
}

// maxLength passes empty values; emptiness is reported by required.
func maxLength(limit int) func(string) bool {
	return func(s string) bool {
		return utf8.RuneCountInString(s) <= limit
	}
}
