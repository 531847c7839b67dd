package exporter

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/duneboard/exporter/internal/geometry"
)

// WriteModel emits the model as the engine's RON board description: one
// document, locations in model order, fields in fixed order (name, terrain,
// spice, sectors; per sector vertices, indices, fighters), one tab per
// nesting level, and a trailing comma after every entry including the last.
// The downstream parser depends on this exact shape; identical models always
// produce byte-identical output.
//
// Postcondition: the document is fully written to w, or a non-nil I/O error
// is returned with the underlying cause.
func WriteModel(w io.Writer, m *Model) error {
	bw := bufio.NewWriter(w)

	line(bw, 0, "[")
	for _, name := range m.Names() {
		rec, _ := m.Get(name)
		writeLocation(bw, rec)
	}
	line(bw, 0, "]")

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing board description: %w", err)
	}
	return nil
}

func writeLocation(bw *bufio.Writer, rec *LocationRecord) {
	line(bw, 1, "(")
	line(bw, 2, "name: %q,", rec.Name)
	line(bw, 2, "terrain: %s,", rec.Terrain)
	line(bw, 2, "spice: %s,", formatSpice(rec.Spice))
	line(bw, 2, "sectors: {")
	for _, id := range rec.Sectors.IDs() {
		sec, _ := rec.Sectors.Get(id)
		writeSector(bw, id, sec)
	}
	line(bw, 2, "},")
	line(bw, 1, "),")
}

func writeSector(bw *bufio.Writer, id int, sec *SectorRecord) {
	line(bw, 3, "%d: (", id)

	line(bw, 4, "vertices: [")
	for _, v := range sec.Vertices {
		line(bw, 5, "%s,", formatVec3(v))
	}
	line(bw, 4, "],")

	var indices strings.Builder
	for _, idx := range sec.Indices {
		fmt.Fprintf(&indices, "%d, ", idx)
	}
	line(bw, 4, "indices: [%s],", indices.String())

	line(bw, 4, "fighters: [")
	for _, f := range sec.Fighters {
		line(bw, 5, "%s,", formatVec3(f))
	}
	line(bw, 4, "],")

	line(bw, 3, "),")
}

func line(bw *bufio.Writer, depth int, format string, args ...any) {
	for i := 0; i < depth; i++ {
		bw.WriteByte('\t')
	}
	fmt.Fprintf(bw, format, args...)
	bw.WriteByte('\n')
}

func formatSpice(spice *geometry.Vec3) string {
	if spice == nil {
		return "None"
	}
	return fmt.Sprintf("Some((%s, %s, %s))",
		formatFloat(spice.X()), formatFloat(spice.Y()), formatFloat(spice.Z()))
}

func formatVec3(v geometry.Vec3) string {
	return fmt.Sprintf("(%s, %s, %s)",
		formatFloat(v.X()), formatFloat(v.Y()), formatFloat(v.Z()))
}

// formatFloat renders a position component at full float32 precision, with a
// decimal point forced so the value always reads as a float literal.
func formatFloat(f float32) string {
	s := strconv.FormatFloat(float64(f), 'g', -1, 32)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
