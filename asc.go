package globelia

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// WriteASC writes rows of points as plain text, one point per line as
// "id x y z", with a blank line terminating each row. The blank lines
// preserve the row grouping, so the file can be re-triangulated later
// without guessing where the rings end.
func WriteASC(w io.Writer, rows []Row) error {
	bw := bufio.NewWriter(w)
	for _, row := range rows {
		for _, p := range row {
			fmt.Fprintf(bw, "%d %g %g %g\n", p.ID, p.X, p.Y, p.Z)
		}
		fmt.Fprintln(bw)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("globelia: write asc: %w", err)
	}
	return nil
}

// SaveASC writes the rows to an asc file at the given path.
func SaveASC(path string, rows []Row) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("globelia: save asc: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := WriteASC(f, rows); err != nil {
		return err
	}
	return f.Close()
}

// ReadASC reads points from an asc stream. Lines may carry either
// "id x y z" or plain "x y z"; ids are reassigned sequentially either
// way, and blank lines are ignored (row recovery is SplitRows' job).
func ReadASC(r io.Reader) ([]Point, error) {
	var points []Point
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) >= 4 {
			fields = fields[1:4] // drop the id column
		}
		if len(fields) < 3 {
			return nil, fmt.Errorf("globelia: asc line %d: want 3 coordinates, got %d",
				line, len(fields))
		}
		var xyz [3]float64
		for i, f := range fields[:3] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("globelia: asc line %d: %w", line, err)
			}
			xyz[i] = v
		}
		points = append(points, Pt(len(points), xyz[0], xyz[1], xyz[2]))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("globelia: read asc: %w", err)
	}
	return points, nil
}

// SplitRows reassembles a flat point list into the rows of a
// quasi-spherical object. With rowLength > 0 it cuts fixed-size chunks.
// Otherwise it detects which spherical angle changes faster between
// consecutive points and starts a new row whenever the slow angle jumps
// by more than a threshold proportional to the expected angular step.
func SplitRows(points []Point, rowLength int) []Row {
	if len(points) == 0 {
		return nil
	}

	if rowLength > 0 {
		var rows []Row
		for start := 0; start < len(points); start += rowLength {
			end := min(start+rowLength, len(points))
			rows = append(rows, Row(points[start:end]))
		}
		return rows
	}

	thetaFast := findFastAngle(points)
	threshold := 0.001 * math.Pi / math.Sqrt(float64(len(points)))

	var rows []Row
	row := Row{points[0]}
	last := points[0]
	for _, p := range points[1:] {
		dTheta := mod2pi(p.Theta() - last.Theta())
		dPhi := angleDelta(p.Phi()-last.Phi(), math.Pi)
		jump := dPhi
		if !thetaFast {
			jump = dTheta
		}
		if math.Abs(jump) > threshold {
			rows = append(rows, row)
			row = nil
		}
		row = append(row, p)
		last = p
	}
	return append(rows, row)
}

// findFastAngle reports whether theta changes faster than phi between
// consecutive points. The first few points are enough to get an idea.
func findFastAngle(points []Point) bool {
	var sumTheta, sumPhi float64
	last := points[0]
	for i, p := range points[1:] {
		if i >= 10 {
			break
		}
		sumTheta += math.Abs(mod2pi(p.Theta() - last.Theta()))
		sumPhi += math.Abs(angleDelta(p.Phi()-last.Phi(), math.Pi))
		last = p
	}
	return sumTheta > sumPhi
}

// angleDelta returns the representative of a in [-period/2, period/2).
func angleDelta(a, period float64) float64 {
	a0 := a - period*math.Floor(a/period)
	if a0 < period/2 {
		return a0
	}
	return a0 - period
}
