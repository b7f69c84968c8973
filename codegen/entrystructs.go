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

// EntryStructsCodegen emits a Go source file declaring one struct per
// unique entries.MemoryFormat, with byte-exact Size/Pack/Unpack methods.
type EntryStructsCodegen struct {
	Package string
	Descs   []*entries.EntryDescription
	Lang    Language
}

func (g *EntryStructsCodegen) PreferredFilename() string {
	return "generated_entries.go"
}

func (g *EntryStructsCodegen) Generate() (string, error) {
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
	if err := entryStructsTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var entryStructsTemplate = template.Must(template.New("entryStructs").Parse(`// Code generated by codegen. DO NOT EDIT.
// {{.Sentinel}}

package {{.Package}}

import (
	"encoding/binary"
	"fmt"
	"unsafe"
)

{{range .Formats}}
// {{.Typename}}TypeID is the one-byte serialization discriminator for
// {{.Typename}}.
const {{.Typename}}TypeID uint8 = {{.TypeID}}

type {{.Typename}} struct {
{{- range .Fields}}
	{{.Name}} {{.GoType}}
{{- end}}
}

// Size returns the exact number of bytes Pack will write for e.
func (e *{{.Typename}}) Size() int {
	size := 1
{{- range .Fields}}
{{- if .IsDyn}}
	size = AlignPayload(size)
	size += int(e.{{.SizeName}}) * {{.DynWidth}}
{{- else if .IsArray}}
	size += {{.Count}} * {{.Width}}
{{- else}}
	size += {{.Width}}
{{- end}}
{{- end}}
	return size
}

// Pack writes e to dst in the wire format {{.Typename}}TypeID identifies.
// It fails if dst is too small to hold Size() bytes.
func (e *{{.Typename}}) Pack(dst []byte) error {
	size := e.Size()
	if dst == nil {
		return fmt.Errorf("%w: nil destination buffer", ErrWireShort)
	}
	if len(dst) < size {
		return fmt.Errorf("%w: need %d bytes, have %d", ErrWireShort, size, len(dst))
	}

	offset := 0
	dst[offset] = {{.Typename}}TypeID
	offset++
{{range .Fields}}
{{- if .IsDyn}}
	binary.NativeEndian.PutUint16(dst[offset:], e.{{.SizeName}})
	offset += 2
	offset = AlignPayload(offset)
	for i := 0; i < int(e.{{.SizeName}}); i++ {
		putUint(dst[offset:], {{.DynWidth}}, uint64(e.{{.Name}}[i]))
		offset += {{.DynWidth}}
	}
{{- else if .IsArray}}
	for i := range e.{{.Name}} {
		putUint(dst[offset:], {{.Width}}, uint64(e.{{.Name}}[i]))
		offset += {{.Width}}
	}
{{- else if .IsSizeField}}
{{- else}}
	putUint(dst[offset:], {{.Width}}, uint64(e.{{.Name}}))
	offset += {{.Width}}
{{- end}}
{{- end}}
	return nil
}

// Unpack reads e from src, which must begin with the {{.Typename}}TypeID
// tag. Unpack does not copy the dynamic-array payload: the resulting
// slice aliases src directly, so the caller must keep src alive for as
// long as e is in use.
func (e *{{.Typename}}) Unpack(src []byte) error {
	if src == nil {
		return fmt.Errorf("%w: nil source buffer", ErrWireShort)
	}
	if len(src) < 1 || src[0] != {{.Typename}}TypeID {
		return fmt.Errorf("%w: expected type %d, got %v", ErrWireTagMismatch, {{.Typename}}TypeID, src[:min(1, len(src))])
	}

	offset := 1
{{range .Fields}}
{{- if .IsDyn}}
	if len(src) < offset+2 {
		return fmt.Errorf("%w: truncated before {{.Name}} size", ErrWireShort)
	}
	e.{{.SizeName}} = binary.NativeEndian.Uint16(src[offset:])
	offset += 2
	offset = AlignPayload(offset)
	n := int(e.{{.SizeName}})
	if len(src) < offset+n*{{.DynWidth}} {
		return fmt.Errorf("%w: truncated {{.Name}} payload", ErrWireShort)
	}
	if n > 0 {
		e.{{.Name}} = unsafe.Slice((*{{.DynElem}})(unsafe.Pointer(&src[offset])), n)
	} else {
		e.{{.Name}} = nil
	}
	offset += n * {{.DynWidth}}
{{- else if .IsArray}}
	if len(src) < offset+{{.Count}}*{{.Width}} {
		return fmt.Errorf("%w: truncated {{.Name}}", ErrWireShort)
	}
	for i := range e.{{.Name}} {
		e.{{.Name}}[i] = {{.ElemType}}(getUint(src[offset:], {{.Width}}))
		offset += {{.Width}}
	}
{{- else if .IsSizeField}}
{{- else}}
	if len(src) < offset+{{.Width}} {
		return fmt.Errorf("%w: truncated {{.Name}}", ErrWireShort)
	}
	e.{{.Name}} = {{.GoType}}(getUint(src[offset:], {{.Width}}))
	offset += {{.Width}}
{{- end}}
{{- end}}
	return nil
}
{{end}}
`))
