package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/KirkDiggler/party-share/internal/catalog"
	partydomain "github.com/KirkDiggler/party-share/internal/domain/party"
	dnderr "github.com/KirkDiggler/party-share/internal/errors"
	partyService "github.com/KirkDiggler/party-share/internal/services/party"
)

// runCommand applies one command to an already started party
func runCommand(ctx context.Context, svc partyService.Service, args []string, out io.Writer) error {
	if len(args) == 0 {
		return printParty(out, svc.Snapshot())
	}

	command, rest := args[0], args[1:]
	switch command {
	case "show":
		return printParty(out, svc.Snapshot())

	case "options":
		if len(rest) != 1 {
			return dnderr.InvalidArgument("usage: options <category>")
		}
		category, err := partydomain.ParseCategory(rest[0])
		if err != nil {
			return err
		}
		return printOptions(out, svc.Options(category))

	case "fill":
		if len(rest) != 3 {
			return dnderr.InvalidArgument("usage: fill <category> <index> <name>")
		}
		ref, err := parseSlotRef(rest[0], rest[1])
		if err != nil {
			return err
		}
		if _, err := svc.OnSlotActivated(ref); err != nil {
			return err
		}
		if err := svc.SelectOption(ctx, rest[2]); err != nil {
			svc.CancelPick()
			return err
		}
		return nil

	case "clear":
		if len(rest) != 2 {
			return dnderr.InvalidArgument("usage: clear <category> <index>")
		}
		ref, err := parseSlotRef(rest[0], rest[1])
		if err != nil {
			return err
		}
		return svc.Clear(ctx, ref)

	case "swap":
		var a, b partydomain.SlotRef
		var err error
		switch len(rest) {
		case 3:
			if a, err = parseSlotRef(rest[0], rest[1]); err != nil {
				return err
			}
			b, err = parseSlotRef(rest[0], rest[2])
		case 4:
			if a, err = parseSlotRef(rest[0], rest[1]); err != nil {
				return err
			}
			b, err = parseSlotRef(rest[2], rest[3])
		default:
			return dnderr.InvalidArgument("usage: swap <category> <a> <b>")
		}
		if err != nil {
			return err
		}
		return svc.OnSlotsSwapped(ctx, a, b)

	case "reset":
		return svc.Reset(ctx)

	case "theme":
		switch len(rest) {
		case 0:
			theme, err := svc.ToggleTheme(ctx)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "theme: %s\n", theme)
			return err
		case 1:
			return svc.SetTheme(ctx, partydomain.Theme(rest[0]))
		}
		return dnderr.InvalidArgument("usage: theme [light|dark]")

	case "share":
		_, err := svc.ShareParty(ctx)
		return err

	case "import":
		if len(rest) != 1 {
			return dnderr.InvalidArgument("usage: import <token-or-link>")
		}
		if err := svc.Import(ctx, rest[0]); err != nil {
			return err
		}
		return printParty(out, svc.Snapshot())
	}

	return dnderr.InvalidArgumentf("unknown command %q", command)
}

func parseSlotRef(rawCategory, rawIndex string) (partydomain.SlotRef, error) {
	category, err := partydomain.ParseCategory(rawCategory)
	if err != nil {
		return partydomain.SlotRef{}, err
	}
	index, err := strconv.Atoi(rawIndex)
	if err != nil {
		return partydomain.SlotRef{}, dnderr.InvalidArgumentf("slot index %q is not a number", rawIndex)
	}
	return partydomain.SlotRef{Category: category, Index: index}, nil
}

func printParty(out io.Writer, snap partydomain.Snapshot) error {
	if _, err := fmt.Fprintf(out, "theme: %s\n", snap.Theme); err != nil {
		return err
	}
	for _, category := range partydomain.Categories {
		if _, err := fmt.Fprintf(out, "%s:\n", category); err != nil {
			return err
		}
		for i, item := range snap.Entries(category) {
			line := "  (empty)"
			if item != nil {
				line = "  " + item.Name
				if item.Attribute != "" {
					line += " [" + item.Attribute + "]"
				}
			}
			if _, err := fmt.Fprintf(out, "  %d%s\n", i, line); err != nil {
				return err
			}
		}
	}
	return nil
}

func printOptions(out io.Writer, options []catalog.Option) error {
	if len(options) == 0 {
		_, err := fmt.Fprintln(out, "no options available")
		return err
	}
	for _, option := range options {
		marker := " "
		if option.InUse {
			marker = "*"
		}
		if _, err := fmt.Fprintf(out, "%s %s\n", marker, option.Item.Name); err != nil {
			return err
		}
	}
	return nil
}
