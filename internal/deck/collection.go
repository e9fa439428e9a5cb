package deck

import (
	"context"
	"crypto/sha1"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// schemaVersion is the Anki collection schema written by this package.
const schemaVersion = 11

var schema = []string{
	`CREATE TABLE col (id integer primary key, crt integer not null, mod integer not null, scm integer not null, ver integer not null, dty integer not null, usn integer not null, ls integer not null, conf text not null, models text not null, decks text not null, dconf text not null, tags text not null)`,
	`CREATE TABLE notes (id integer primary key, guid text not null, mid integer not null, mod integer not null, usn integer not null, tags text not null, flds text not null, sfld integer not null, csum integer not null, flags integer not null, data text not null)`,
	`CREATE TABLE cards (id integer primary key, nid integer not null, did integer not null, ord integer not null, mod integer not null, usn integer not null, type integer not null, queue integer not null, due integer not null, ivl integer not null, factor integer not null, reps integer not null, lapses integer not null, left integer not null, odue integer not null, odid integer not null, flags integer not null, data text not null)`,
	`CREATE TABLE revlog (id integer primary key, cid integer not null, usn integer not null, ease integer not null, ivl integer not null, lastIvl integer not null, factor integer not null, time integer not null, type integer not null)`,
	`CREATE TABLE graves (usn integer not null, oid integer not null, type integer not null)`,
	`CREATE INDEX ix_notes_usn on notes (usn)`,
	`CREATE INDEX ix_cards_usn on cards (usn)`,
	`CREATE INDEX ix_revlog_usn on revlog (usn)`,
	`CREATE INDEX ix_cards_nid on cards (nid)`,
	`CREATE INDEX ix_cards_sched on cards (did, queue, due)`,
	`CREATE INDEX ix_revlog_cid on revlog (cid)`,
	`CREATE INDEX ix_notes_csum on notes (csum)`,
}

// writeCollection creates the SQLite collection file of d at path.
func writeCollection(ctx context.Context, path string, d *Deck) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open collection: %w", err)
	}
	defer db.Close()

	if err := applyPragmas(db); err != nil {
		return fmt.Errorf("apply pragmas: %w", err)
	}
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}

	drv := entsql.OpenDB(dialect.SQLite, db)
	tx, err := drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := insertAll(ctx, tx, d); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func insertAll(ctx context.Context, tx dialect.Tx, d *Deck) error {
	createdMs := d.Created.UnixMilli()
	createdSec := d.Created.Unix()

	col, err := collectionRow(d)
	if err != nil {
		return err
	}
	q, args := entsql.Dialect(dialect.SQLite).
		Insert("col").
		Columns("id", "crt", "mod", "scm", "ver", "dty", "usn", "ls", "conf", "models", "decks", "dconf", "tags").
		Values(1, createdSec, createdMs, createdMs, schemaVersion, 0, 0, 0, col.conf, col.models, col.decks, col.dconf, "{}").
		Query()
	if err := tx.Exec(ctx, q, args, nil); err != nil {
		return fmt.Errorf("insert col: %w", err)
	}

	for i, n := range d.Notes {
		id := createdMs + int64(i)
		q, args := entsql.Dialect(dialect.SQLite).
			Insert("notes").
			Columns("id", "guid", "mid", "mod", "usn", "tags", "flds", "sfld", "csum", "flags", "data").
			Values(id, n.GUID, d.ModelID, createdSec, -1, joinTags(n.Tags), n.Front+"\x1f"+n.Back, n.Front, checksum(n.Front), 0, "").
			Query()
		if err := tx.Exec(ctx, q, args, nil); err != nil {
			return fmt.Errorf("insert note %d: %w", i, err)
		}

		q, args = entsql.Dialect(dialect.SQLite).
			Insert("cards").
			Columns("id", "nid", "did", "ord", "mod", "usn", "type", "queue", "due", "ivl", "factor", "reps", "lapses", "left", "odue", "odid", "flags", "data").
			Values(id, id, d.ID, 0, createdSec, -1, 0, 0, i+1, 0, 0, 0, 0, 0, 0, 0, 0, "").
			Query()
		if err := tx.Exec(ctx, q, args, nil); err != nil {
			return fmt.Errorf("insert card %d: %w", i, err)
		}
	}
	return nil
}

// applyPragmas keeps the collection a single self-contained file.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = DELETE",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func joinTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	return " " + strings.Join(tags, " ") + " "
}

var htmlTag = regexp.MustCompile(`<[^>]*>`)

// checksum is the first 8 hex digits of the SHA-1 of the tag-stripped
// sort field, as Anki computes it for duplicate detection.
func checksum(field string) int64 {
	sum := sha1.Sum([]byte(htmlTag.ReplaceAllString(field, "")))
	v, _ := strconv.ParseInt(hex.EncodeToString(sum[:])[:8], 16, 64)
	return v
}

type colJSON struct {
	conf, models, decks, dconf string
}

func collectionRow(d *Deck) (colJSON, error) {
	sec := d.Created.Unix()
	conf := map[string]any{
		"activeDecks":   []int64{1},
		"addToCur":      true,
		"collapseTime":  1200,
		"curDeck":       1,
		"curModel":      strconv.FormatInt(d.ModelID, 10),
		"dueCounts":     true,
		"estTimes":      true,
		"newBury":       true,
		"newSpread":     0,
		"nextPos":       len(d.Notes) + 1,
		"sortBackwards": false,
		"sortType":      "noteFld",
		"timeLim":       0,
	}
	field := func(name string, ord int) map[string]any {
		return map[string]any{
			"name": name, "ord": ord, "sticky": false, "rtl": false,
			"font": "Arial", "size": 20, "media": []any{},
		}
	}
	models := map[string]any{
		strconv.FormatInt(d.ModelID, 10): map[string]any{
			"id":    d.ModelID,
			"name":  d.Name,
			"type":  0,
			"mod":   sec,
			"usn":   -1,
			"sortf": 0,
			"did":   d.ID,
			"tmpls": []any{map[string]any{
				"name":  "Card 1",
				"ord":   0,
				"qfmt":  "{{Question}}",
				"afmt":  `{{FrontSide}}<hr id="answer">{{Answer}}`,
				"did":   nil,
				"bqfmt": "",
				"bafmt": "",
			}},
			"flds":      []any{field("Question", 0), field("Answer", 1)},
			"css":       ".card {\n font-family: arial;\n font-size: 20px;\n text-align: center;\n color: black;\n background-color: white;\n}\n",
			"latexPre":  "\\documentclass[12pt]{article}\n\\special{papersize=3in,5in}\n\\usepackage{amssymb,amsmath}\n\\pagestyle{empty}\n\\setlength{\\parindent}{0in}\n\\begin{document}\n",
			"latexPost": "\\end{document}",
			"latexsvg":  false,
			"req":       []any{[]any{0, "any", []int{0}}},
			"tags":      []string{},
			"vers":      []any{},
		},
	}
	deckEntry := func(id int64, name string) map[string]any {
		return map[string]any{
			"collapsed": false, "conf": 1, "desc": "", "dyn": 0,
			"extendNew": 0, "extendRev": 50, "id": id, "name": name,
			"mod": sec, "usn": -1,
			"lrnToday": []int{0, 0}, "newToday": []int{0, 0},
			"revToday": []int{0, 0}, "timeToday": []int{0, 0},
		}
	}
	decks := map[string]any{"1": deckEntry(1, "Default")}
	decks[strconv.FormatInt(d.ID, 10)] = deckEntry(d.ID, d.Name)
	dconf := map[string]any{
		"1": map[string]any{
			"id": 1, "name": "Default", "autoplay": true, "maxTaken": 60,
			"mod": 0, "usn": 0, "replayq": true, "timer": 0,
			"lapse": map[string]any{
				"delays": []int{10}, "leechAction": 0, "leechFails": 8, "minInt": 1, "mult": 0,
			},
			"new": map[string]any{
				"bury": true, "delays": []int{1, 10}, "initialFactor": 2500,
				"ints": []int{1, 4, 7}, "order": 1, "perDay": 20, "separate": true,
			},
			"rev": map[string]any{
				"bury": true, "ease4": 1.3, "fuzz": 0.05, "ivlFct": 1,
				"maxIvl": 36500, "minSpace": 1, "perDay": 100,
			},
		},
	}

	var out colJSON
	for _, v := range []struct {
		dst *string
		src any
	}{{&out.conf, conf}, {&out.models, models}, {&out.decks, decks}, {&out.dconf, dconf}} {
		b, err := json.Marshal(v.src)
		if err != nil {
			return colJSON{}, fmt.Errorf("encode collection metadata: %w", err)
		}
		*v.dst = string(b)
	}
	return out, nil
}
