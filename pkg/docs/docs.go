// Package docs renders documentation pages for model definitions.
//
// A page is built as Markdown (the model description is included verbatim,
// so it may itself use Markdown) and converted to HTML with goldmark.
package docs

import (
	"bytes"
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/doodlesbykumbi/autocrud/pkg/definition"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.Table),
)

// Markdown returns the documentation of def as Markdown.
func Markdown(def definition.Model) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", def.Name)
	if def.Description != "" {
		b.WriteString(def.Description)
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "Served at `/api/%s`.\n\n", def.RouteName())
	if def.HasOwner() {
		fmt.Fprintf(&b, "Records are owned through the `%s` field.\n\n", def.OwnerField)
	}

	b.WriteString("## Fields\n\n")
	b.WriteString("| Name | Type | Required | Default | Unique | Relation |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	for _, f := range def.Fields {
		typ := "string"
		if ft, err := f.FieldType(); err == nil {
			typ = ft.String()
		}
		dflt := ""
		if f.Default != nil {
			dflt = fmt.Sprintf("`%v`", f.Default)
		}
		rel := ""
		if f.Relation != nil {
			rel = f.Relation.Model + "." + f.Relation.Field
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			cell(f.Name), typ, yesNo(f.Required), cell(dflt), yesNo(f.Unique), cell(rel))
	}

	b.WriteString("\n## Permissions\n\n")
	if len(def.RBAC) == 0 {
		b.WriteString("Only administrators may access records.\n")
		return b.String()
	}
	roles := make([]string, 0, len(def.RBAC))
	for role := range def.RBAC {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	b.WriteString("| Role | Actions |\n|---|---|\n")
	for _, role := range roles {
		fmt.Fprintf(&b, "| %s | %s |\n", cell(role), cell(strings.Join(def.RBAC[role], ", ")))
	}
	return b.String()
}

// HTML renders the documentation of def as a standalone HTML page.
func HTML(def definition.Model) ([]byte, error) {
	var body bytes.Buffer
	if err := markdown.Convert([]byte(Markdown(def)), &body); err != nil {
		return nil, fmt.Errorf("failed to render docs for %s: %w", def.Name, err)
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&page, "<title>%s</title>\n", html.EscapeString(def.Name))
	page.WriteString("</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}

func cell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return ""
}
