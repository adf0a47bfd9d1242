// Command specinfo inspects measured spectra containers.
//
// Usage:
//
//	specinfo [flags] [container.json]
//
// Without a file it builds a small two LED demonstration rig, which also
// serves as a template for new container files.
//
// Examples:
//
//	specinfo leds.json
//	specinfo -map 2000,1500 leds.json
//	specinfo -spectrum
//	specinfo -save leds.json
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-spectral/measure"
	"github.com/cwbudde/algo-spectral/spectral/domain"
	"github.com/cwbudde/algo-spectral/spectral/signal"
	"github.com/cwbudde/algo-spectral/spectral/unit"
)

func main() {
	mapArg := flag.String("map", "", "comma-separated channel intensities to map onto input settings")
	spectrum := flag.Bool("spectrum", false, "print the normalized spectrum samples")
	save := flag.String("save", "", "write the container as JSON to `file`")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: specinfo [flags] [container.json]\n\n")
		fmt.Fprintf(os.Stderr, "Inspects measured spectra containers.\n")
		fmt.Fprintf(os.Stderr, "Without a file, builds a two LED demonstration rig.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  specinfo leds.json\n")
		fmt.Fprintf(os.Stderr, "  specinfo -map 2000,1500 leds.json\n")
		fmt.Fprintf(os.Stderr, "  specinfo -spectrum\n")
		fmt.Fprintf(os.Stderr, "  specinfo -save leds.json\n")
	}
	flag.Parse()

	s, err := loadSpectra(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := printSummary(os.Stdout, s); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := printChannels(os.Stdout, s); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if *spectrum {
		if err := printSpectrum(os.Stdout, s); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
	if *mapArg != "" {
		if err := printMapping(os.Stdout, s, *mapArg); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
	if *save != "" {
		if err := saveSpectra(*save, s); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
}

func loadSpectra(args []string) (*measure.Spectra, error) {
	switch len(args) {
	case 0:
		return demoSpectra()
	case 1:
	default:
		return nil, fmt.Errorf("expected one container file, got %d arguments", len(args))
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := measure.Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", args[0], err)
	}
	return s, nil
}

// demoSpectra builds a two LED rig measured at three drive settings.
func demoSpectra() (*measure.Spectra, error) {
	wl, err := domain.FromRange(400, 700, 50, unit.Nanometer)
	if err != nil {
		return nil, err
	}
	green, err := demoChannel(wl, "green", []float64{0, 0.02, 0.35, 1, 0.35, 0.02, 0})
	if err != nil {
		return nil, err
	}
	red, err := demoChannel(wl, "red", []float64{0, 0, 0.01, 0.08, 0.6, 1, 0.25})
	if err != nil {
		return nil, err
	}
	return measure.New(green, red)
}

// demoChannel scales shape by an LED-like drive curve measured at 0, 0.5
// and 1 V. The mid setting sits below half power, so the inverse mapping
// has a visible knee.
func demoChannel(wl *domain.Domain, name string, shape []float64) (*measure.Spectrum, error) {
	settings := []float64{0, 0.5, 1}
	drive := []float64{0, 0.4, 1}
	rows := make([][]float64, len(settings))
	for i := range settings {
		row := make([]float64, len(shape))
		for j, v := range shape {
			row[j] = 50 * drive[i] * v
		}
		rows[i] = row
	}
	sig, err := signal.New(rows, wl,
		signal.WithDomainAxis(1),
		signal.WithUnit(unit.Microwatt),
		signal.WithName(name),
	)
	if err != nil {
		return nil, err
	}
	return measure.NewSpectrumFromSettings(sig, settings, unit.Volt,
		measure.WithZeroBoundary(0),
		measure.WithMaxBoundary(1),
	)
}

func printSummary(w io.Writer, s *measure.Spectra) error {
	wl, err := s.Wavelengths()
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Channels:     %d (%s)\n", s.Len(), strings.Join(s.Names(), ", ")); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Wavelengths:  %g..%g %s (%d samples)\n", wl.Start(), wl.End(), wl.Unit(), wl.Len()); err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "Values:       %s\n\n", unitLabel(s.ValueUnit()))
	return err
}

func printChannels(w io.Writer, s *measure.Spectra) error {
	lo, hi, err := s.Bounds()
	if err != nil {
		return err
	}
	inputU, err := s.InputUnit()
	if err != nil {
		return err
	}
	intensityU, err := s.IntensityUnit()
	if err != nil {
		return err
	}
	zeroB := s.ZeroBoundary()
	maxB := s.MaxBoundary()
	zil := s.ZeroIsLower()
	inputs := s.InputBounds()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Channel\tInputs [%s]\tPoints\tIntensity [%s]\tZero\tMax\tZero end\n",
		unitLabel(inputU), unitLabel(intensityU)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "-------\t------\t------\t---------\t----\t---\t--------\n"); err != nil {
		return err
	}
	for c, name := range s.Names() {
		end := "upper"
		if zil[c] {
			end = "lower"
		}
		if _, err := fmt.Fprintf(tw, "%s\t%g..%g\t%d\t%g..%g\t%s\t%s\t%s\n",
			name,
			inputs[c][0], inputs[c][1],
			s.At(c).Inputs().Len(),
			lo[c], hi[c],
			boundary(zeroB[c]),
			boundary(maxB[c]),
			end,
		); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func printSpectrum(w io.Writer, s *measure.Spectra) error {
	ns, err := s.NormalizedSpectrum()
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "\nNormalized spectrum [%s]:\n", unitLabel(ns.Unit())); err != nil {
		return err
	}
	chans := make([][]float64, s.Len())
	for c := range chans {
		chans[c] = ns.Channel(c)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	cols := append([]string{"Wavelength [" + unitLabel(ns.Domain().Unit()) + "]"}, ns.Labels()...)
	if _, err := fmt.Fprintln(tw, strings.Join(cols, "\t")); err != nil {
		return err
	}
	for k, x := range ns.Domain().Values() {
		row := make([]string, 0, len(chans)+1)
		row = append(row, strconv.FormatFloat(x, 'g', -1, 64))
		for _, ch := range chans {
			row = append(row, strconv.FormatFloat(ch[k], 'g', 6, 64))
		}
		if _, err := fmt.Fprintln(tw, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func printMapping(w io.Writer, s *measure.Spectra, arg string) error {
	values, err := parseVector(arg)
	if err != nil {
		return fmt.Errorf("-map: %w", err)
	}
	settings, err := s.MapOne(values)
	if err != nil {
		return err
	}
	inputU, err := s.InputUnit()
	if err != nil {
		return err
	}
	intensityU, err := s.IntensityUnit()
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "\n"); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Channel\tIntensity [%s]\tSetting [%s]\n",
		unitLabel(intensityU), unitLabel(inputU)); err != nil {
		return err
	}
	for c, name := range s.Names() {
		if _, err := fmt.Fprintf(tw, "%s\t%g\t%g\n", name, values[c], settings[c]); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func saveSpectra(path string, s *measure.Spectra) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := measure.Save(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func parseVector(arg string) ([]float64, error) {
	parts := strings.Split(arg, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("bad value %q", p)
		}
		out = append(out, v)
	}
	return out, nil
}

// boundary renders an unset boundary value as a dash.
func boundary(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// unitLabel renders dimensionless units as "1" so table headers stay
// readable.
func unitLabel(u unit.Unit) string {
	if s := u.String(); s != "" {
		return s
	}
	return "1"
}
