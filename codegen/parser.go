// Copyright 2024 The Profilo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codegen

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/gotrace/profilo/entries"
)

// DispatchParserCodegen emits a Go source file declaring a Visitor
// interface (one method per unique entries.MemoryFormat) and a Dispatch
// function that peeks the wire type_id tag byte of a buffer, unpacks it
// into the matching generated struct, and calls the matching visitor
// method. An unrecognized tag is reported through ErrUnknownKind rather
// than panicking, so callers can skip or log unknown entries instead of
// aborting the whole stream.
type DispatchParserCodegen struct {
	Package string
	Descs   []*entries.EntryDescription
	Lang    Language
}

func (g *DispatchParserCodegen) PreferredFilename() string {
	return "generated_dispatch.go"
}

func (g *DispatchParserCodegen) Generate() (string, error) {
	if g.Lang != LanguageGo {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedLanguage, g.Lang)
	}

	var formats []*formatIR
	for _, m := range uniqueFormats(g.Descs) {
		ir, err := newFormatIR(m)
		if err != nil {
			return "", err
		}
		formats = append(formats, ir)
	}

	data := struct {
		Package  string
		Sentinel string
		Formats  []*formatIR
	}{g.Package, sentinelToken, formats}

	var buf bytes.Buffer
	if err := dispatchParserTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var dispatchParserTemplate = template.Must(template.New("dispatchParser").Parse(`// Code generated by codegen. DO NOT EDIT.
// {{.Sentinel}}

package {{.Package}}

import "fmt"

// Visitor receives one callback per wire record kind a Dispatch call
// decodes. Implementations that only care about a subset of kinds can
// embed UnimplementedVisitor and override the methods they need.
type Visitor interface {
{{- range .Formats}}
	Visit{{.Typename}}(e *{{.Typename}}) error
{{- end}}
}

// UnimplementedVisitor satisfies Visitor with no-op methods, so callers
// can embed it and override only the kinds they care about.
type UnimplementedVisitor struct{}

{{range .Formats}}
func (UnimplementedVisitor) Visit{{.Typename}}(*{{.Typename}}) error { return nil }
{{end}}
// Dispatch peeks the type_id tag at src[0], unpacks src into the
// matching generated record, and calls the matching Visitor method. An
// unrecognized tag returns ErrUnknownKind wrapped with the offending
// byte; the caller decides whether that is fatal or just means the
// stream advanced to a frame format this binary predates.
func Dispatch(src []byte, v Visitor) error {
	if len(src) == 0 {
		return fmt.Errorf("%w: empty buffer", ErrWireShort)
	}
	switch src[0] {
{{- range .Formats}}
	case {{.Typename}}TypeID:
		var e {{.Typename}}
		if err := e.Unpack(src); err != nil {
			return err
		}
		return v.Visit{{.Typename}}(&e)
{{- end}}
	default:
		return fmt.Errorf("%w: %d", ErrUnknownKind, src[0])
	}
}
`))
