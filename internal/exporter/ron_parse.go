package exporter

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/duneboard/exporter/internal/geometry"
)

// ParseModel parses a board description produced by WriteModel back into a
// Model. It accepts exactly the emitted grammar, no more; it exists to verify
// a serialized document reconstructs the model that produced it and is used
// as a pre-write validation step.
//
// Postcondition: returns a Model equal to the writer's input for any document
// WriteModel emits, or a non-nil error naming the offending line.
func ParseModel(data []byte) (*Model, error) {
	p := &ronParser{scanner: bufio.NewScanner(bytes.NewReader(data))}

	if err := p.expect("["); err != nil {
		return nil, err
	}

	model := NewModel()
	for {
		tok, err := p.next()
		if err != nil {
			return nil, err
		}
		if tok == "]" {
			return model, nil
		}
		if tok != "(" {
			return nil, p.errorf("expected %q or %q, got %q", "(", "]", tok)
		}
		rec, err := p.parseLocation()
		if err != nil {
			return nil, err
		}
		model.Put(rec)
	}
}

// ronParser is a line-oriented parser over the rigid emitted grammar.
// Indentation is cosmetic and stripped before matching.
type ronParser struct {
	scanner *bufio.Scanner
	lineNo  int
}

func (p *ronParser) next() (string, error) {
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", fmt.Errorf("reading board description: %w", err)
		}
		return "", fmt.Errorf("unexpected end of document at line %d", p.lineNo)
	}
	p.lineNo++
	return strings.TrimLeft(p.scanner.Text(), "\t"), nil
}

func (p *ronParser) expect(want string) error {
	tok, err := p.next()
	if err != nil {
		return err
	}
	if tok != want {
		return p.errorf("expected %q, got %q", want, tok)
	}
	return nil
}

func (p *ronParser) errorf(format string, args ...any) error {
	return fmt.Errorf("line %d: %s", p.lineNo, fmt.Sprintf(format, args...))
}

func (p *ronParser) parseLocation() (*LocationRecord, error) {
	rec := &LocationRecord{Sectors: NewSectorMap()}

	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	raw, ok := strings.CutPrefix(tok, "name: ")
	if !ok || !strings.HasSuffix(raw, ",") {
		return nil, p.errorf("malformed name field %q", tok)
	}
	rec.Name, err = strconv.Unquote(strings.TrimSuffix(raw, ","))
	if err != nil {
		return nil, p.errorf("malformed name literal %q: %v", raw, err)
	}

	tok, err = p.next()
	if err != nil {
		return nil, err
	}
	raw, ok = strings.CutPrefix(tok, "terrain: ")
	if !ok || !strings.HasSuffix(raw, ",") {
		return nil, p.errorf("malformed terrain field %q", tok)
	}
	switch t := Terrain(strings.TrimSuffix(raw, ",")); t {
	case TerrainRock, TerrainStronghold, TerrainSand:
		rec.Terrain = t
	default:
		return nil, p.errorf("unknown terrain %q", raw)
	}

	tok, err = p.next()
	if err != nil {
		return nil, err
	}
	raw, ok = strings.CutPrefix(tok, "spice: ")
	if !ok || !strings.HasSuffix(raw, ",") {
		return nil, p.errorf("malformed spice field %q", tok)
	}
	raw = strings.TrimSuffix(raw, ",")
	if raw != "None" {
		inner, ok := strings.CutPrefix(raw, "Some(")
		if !ok || !strings.HasSuffix(inner, ")") {
			return nil, p.errorf("malformed spice value %q", raw)
		}
		v, err := parseVec3(strings.TrimSuffix(inner, ")"))
		if err != nil {
			return nil, p.errorf("malformed spice position %q: %v", raw, err)
		}
		rec.Spice = &v
	}

	if err := p.expect("sectors: {"); err != nil {
		return nil, err
	}
	for {
		tok, err := p.next()
		if err != nil {
			return nil, err
		}
		if tok == "}," {
			break
		}
		idRaw, ok := strings.CutSuffix(tok, ": (")
		if !ok {
			return nil, p.errorf("malformed sector entry %q", tok)
		}
		id, err := strconv.Atoi(idRaw)
		if err != nil {
			return nil, p.errorf("malformed sector id %q: %v", idRaw, err)
		}
		sec, err := p.parseSector()
		if err != nil {
			return nil, err
		}
		rec.Sectors.Put(id, sec)
	}

	if err := p.expect("),"); err != nil {
		return nil, err
	}
	return rec, nil
}

func (p *ronParser) parseSector() (*SectorRecord, error) {
	sec := &SectorRecord{}

	vertices, err := p.parsePositions("vertices: [")
	if err != nil {
		return nil, err
	}
	sec.Vertices = vertices

	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	raw, ok := strings.CutPrefix(tok, "indices: [")
	if !ok || !strings.HasSuffix(raw, "],") {
		return nil, p.errorf("malformed indices field %q", tok)
	}
	for _, part := range strings.Split(strings.TrimSuffix(raw, "],"), ", ") {
		if part == "" {
			continue
		}
		idx, err := strconv.Atoi(part)
		if err != nil {
			return nil, p.errorf("malformed index %q: %v", part, err)
		}
		sec.Indices = append(sec.Indices, idx)
	}

	fighters, err := p.parsePositions("fighters: [")
	if err != nil {
		return nil, err
	}
	sec.Fighters = fighters

	if err := p.expect("),"); err != nil {
		return nil, err
	}
	return sec, nil
}

func (p *ronParser) parsePositions(opener string) ([]geometry.Vec3, error) {
	if err := p.expect(opener); err != nil {
		return nil, err
	}
	var out []geometry.Vec3
	for {
		tok, err := p.next()
		if err != nil {
			return nil, err
		}
		if tok == "]," {
			return out, nil
		}
		if !strings.HasSuffix(tok, ",") {
			return nil, p.errorf("malformed position entry %q", tok)
		}
		v, err := parseVec3(strings.TrimSuffix(tok, ","))
		if err != nil {
			return nil, p.errorf("malformed position %q: %v", tok, err)
		}
		out = append(out, v)
	}
}

func parseVec3(s string) (geometry.Vec3, error) {
	inner, ok := strings.CutPrefix(s, "(")
	if !ok || !strings.HasSuffix(inner, ")") {
		return geometry.Vec3{}, fmt.Errorf("not a parenthesized triple: %q", s)
	}
	parts := strings.Split(strings.TrimSuffix(inner, ")"), ", ")
	if len(parts) != 3 {
		return geometry.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(parts))
	}
	var v geometry.Vec3
	for i, part := range parts {
		f, err := strconv.ParseFloat(part, 32)
		if err != nil {
			return geometry.Vec3{}, fmt.Errorf("component %d: %w", i, err)
		}
		v[i] = float32(f)
	}
	return v, nil
}
