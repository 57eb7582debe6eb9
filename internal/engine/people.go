package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-schedule3d/internal/config"
)

// ImportPeople reads a vCard stream and returns one display name per card,
// preferring FN over the structured N field. Malformed cards are skipped.
func ImportPeople(ctx context.Context, r io.Reader) ([]string, error) {
	decoder := vcard.NewDecoder(r)
	var names []string

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyError, err)
			continue
		}

		if name := cardName(card); name != "" {
			names = append(names, name)
		}
	}

	slog.Info(config.MsgPeopleImported,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyCount, len(names))
	return names, nil
}

func cardName(card vcard.Card) string {
	if fn := card.Get(config.VCardFN); fn != nil && strings.TrimSpace(fn.Value) != "" {
		return strings.TrimSpace(fn.Value)
	}
	if n := card.Name(); n != nil {
		return strings.TrimSpace(strings.Join([]string{n.GivenName, n.FamilyName}, " "))
	}
	return ""
}

// LoadPeople fetches location (file path or URL) and decodes it as a vCard
// stream.
func LoadPeople(ctx context.Context, f Fetcher, location string) ([]string, error) {
	rc, err := OpenSource(ctx, f, location)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrPeopleImport, err)
	}
	defer func() { _ = rc.Close() }()

	names, err := ImportPeople(ctx, rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
	}
	return names, nil
}

// AddPeople registers every name and returns how many were new. Blank names
// are skipped.
func (s *Session) AddPeople(names []string) int {
	added := 0
	for _, name := range names {
		if ok, err := s.AddPerson(name); err == nil && ok {
			added++
		}
	}
	return added
}

// ImportPeopleInto loads names from location and adds them to s. It returns
// how many people were newly registered.
func ImportPeopleInto(ctx context.Context, s *Session, f Fetcher, location string) (int, error) {
	names, err := LoadPeople(ctx, f, location)
	if err != nil {
		return 0, err
	}
	return s.AddPeople(names), nil
}
