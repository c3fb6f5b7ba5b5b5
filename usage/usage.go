// Package usage prints the flags of a dflags.Registry grouped by owner.
package usage

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/apstndb/lox"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/ngicks/go-iterator-helper/hiter"
	"github.com/ngicks/go-iterator-helper/x/exp/xiter"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/samber/lo"

	"github.com/apstndb/dflags"
)

// Owner is the usage of one owner's flags.
type Owner struct {
	Name        string `json:"owner" yaml:"owner"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Flags       []Flag `json:"flags" yaml:"flags"`
}

// Flag is the usage of one flag.
type Flag struct {
	Name        string `json:"name" yaml:"name"`
	Alt         string `json:"alt,omitempty" yaml:"alt,omitempty"`
	Type        string `json:"type" yaml:"type"`
	Value       string `json:"value" yaml:"value"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Option configures a Printer.
type Option func(*Printer)

// WithFormat sets the output format. The default is FormatText.
func WithFormat(f Format) Option {
	return func(p *Printer) {
		p.format = f
	}
}

// WithColor forces colored owner headings on or off in text output. By
// default color follows the terminal detection of github.com/fatih/color.
func WithColor(enabled bool) Option {
	return func(p *Printer) {
		p.color = &enabled
	}
}

// WithOwnerPrefix restricts output to owners starting with prefix, such as
// the packages below one import path.
func WithOwnerPrefix(prefix string) Option {
	return func(p *Printer) {
		p.ownerPrefix = prefix
	}
}

// Printer renders usage.
type Printer struct {
	w           io.Writer
	format      Format
	color       *bool
	ownerPrefix string
}

// New creates a printer writing to w.
func New(w io.Writer, opts ...Option) *Printer {
	p := &Printer{w: w, format: FormatText}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Collect builds the usage model of r: owners sorted by name, each with its
// flags in FlagID order.
func Collect(r *dflags.Registry, ownerPrefix string) []Owner {
	owners := lo.Filter(r.Owners(), func(owner string, _ int) bool {
		return strings.HasPrefix(owner, ownerPrefix)
	})
	return lo.Map(owners, func(owner string, _ int) Owner {
		desc, _ := r.OwnerDescription(owner)
		return Owner{
			Name:        owner,
			Description: desc,
			Flags:       lo.Map(r.ByOwner(owner), toFlag),
		}
	})
}

func toFlag(m dflags.Metadata, _ int) Flag {
	return Flag{
		Name:        m.ID.Name,
		Alt:         m.Alt,
		Type:        string(m.Type),
		Value:       fmt.Sprint(m.Handle.Value()),
		Description: m.Description,
	}
}

// Print writes the usage of r.
func (p *Printer) Print(r *dflags.Registry) error {
	owners := Collect(r, p.ownerPrefix)
	switch p.format {
	case FormatText, "":
		return p.printText(owners)
	case FormatTable:
		return p.printTable(owners)
	case FormatYAML:
		return encodeYAML(p.w, owners)
	case FormatJSON:
		return encodeJSON(p.w, owners)
	default:
		return fmt.Errorf("unsupported format: %s", p.format)
	}
}

// printText writes one block per owner:
//
//	owner:
//	description
//
//		name, alt  description (default: value)
func (p *Printer) printText(owners []Owner) error {
	heading := color.New(color.Bold)
	if p.color != nil {
		if *p.color {
			heading.EnableColor()
		} else {
			heading.DisableColor()
		}
	}

	var sb strings.Builder
	for _, owner := range owners {
		sb.WriteString(heading.Sprint(owner.Name + ":"))
		sb.WriteString("\n")
		if owner.Description != "" {
			sb.WriteString(owner.Description + "\n\n")
		}

		names := lo.Map(owner.Flags, func(f Flag, _ int) string {
			return "--" + f.Name + lox.IfOrEmpty(f.Alt != "", ", -"+f.Alt)
		})
		width := hiter.Max(xiter.Map(runewidth.StringWidth, slices.Values(names)))
		for i, f := range owner.Flags {
			line := "\t" + runewidth.FillRight(names[i], width) + "  " +
				f.Description + lox.IfOrEmpty(f.Value != "", " (default: "+f.Value+")")
			sb.WriteString(strings.TrimRight(line, " ") + "\n")
		}
		sb.WriteString("\n")
	}

	_, err := io.WriteString(p.w, sb.String())
	return err
}

func (p *Printer) printTable(owners []Owner) error {
	table := tablewriter.NewTable(p.w,
		tablewriter.WithRenderer(
			renderer.NewBlueprint(tw.Rendition{Symbols: tw.NewSymbols(tw.StyleASCII)})),
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithTrimSpace(tw.Off),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	).Configure(func(config *tablewriter.Config) {
		config.Row.Formatting.AutoWrap = tw.WrapNone
		config.Row.Alignment.Global = tw.AlignLeft
	})

	table.Header([]string{"Flag", "Alt", "Type", "Default", "Description"})
	for _, owner := range owners {
		for _, f := range owner.Flags {
			fqn := dflags.NewFlagID(owner.Name, f.Name).FQN()
			if err := table.Append([]string{fqn, f.Alt, f.Type, f.Value, f.Description}); err != nil {
				return fmt.Errorf("failed to append row: %w", err)
			}
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}
