package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/icpms/go-dat"
	"github.com/icpms/go-dat/formats/datfile"
	"github.com/mitchellh/go-homedir"
)

const extractDescription = `Decodes the given dat files and produces a CSV file next to each input
with the decoded measurements. Directory arguments expand to the dat
files they contain. With more than one input an aggregate CSV combining
all inputs is written as well, named after the first input with a
"combinedNN" suffix chosen to avoid overwriting existing files.`

type CmdExtract struct {
	cmd

	OutputDir string `short:"o" long:"output" value-name:"dir" description:"Directory for the combined output file. Inferred from the inputs when not given."`
	Args      struct {
		Paths []string `positional-arg-name:"path" required:"1" description:"Dat files or directories containing dat files."`
	} `positional-args:"yes"`
}

// input pairs a DatFile with the path it was loaded from; the output
// files are named after that path.
type input struct {
	path string
	dat  *dat.DatFile
}

func (c *CmdExtract) Execute(args []string) error {
	files, dirs, err := expandPaths(c.Args.Paths)
	if err != nil {
		return err
	}

	inputs := make([]input, 0, len(files))
	for _, path := range files {
		d, err := dat.NewDatFile(path)
		if err != nil {
			return fmt.Errorf("%s: %s", path, err)
		}

		inputs = append(inputs, input{path: path, dat: d})
	}

	sort.Slice(inputs, func(i, j int) bool {
		return inputs[i].dat.Timestamp() < inputs[j].dat.Timestamp()
	})

	var combined *output
	if len(inputs) > 1 {
		dir, err := c.outputDir(dirs, inputs)
		if err != nil {
			return err
		}

		combined, err = newCombinedOutput(dir, inputs[0].path)
		if err != nil {
			return err
		}

		defer combined.Close()
		fmt.Println("Writing to", combined.path)
	}

	for _, in := range inputs {
		if c.Verbose {
			fmt.Println("Extracting", in.path)
		}

		if err := extractFile(in, combined); err != nil {
			return fmt.Errorf("%s: %s", in.path, err)
		}
	}

	return nil
}

// expandPaths splits the arguments into dat files and directories,
// expanding each directory to the dat files it contains.
func expandPaths(paths []string) (files, dirs []string, err error) {
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, nil, err
		}

		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		dirs = append(dirs, path)
		expanded, err := filepath.Glob(filepath.Join(path, "*.dat"))
		if err != nil {
			return nil, nil, err
		}

		files = append(files, expanded...)
	}

	return files, dirs, nil
}

// outputDir resolves the directory for the combined output file: the
// --output flag, else the single directory argument, else the common
// parent of the inputs, else the user's Desktop.
func (c *CmdExtract) outputDir(dirs []string, inputs []input) (string, error) {
	if c.OutputDir != "" {
		return c.OutputDir, nil
	}

	if len(dirs) == 1 {
		return dirs[0], nil
	}

	if len(dirs) == 0 {
		parents := make(map[string]bool)
		for _, in := range inputs {
			parents[filepath.Dir(in.path)] = true
		}

		if len(parents) == 1 {
			for parent := range parents {
				return parent, nil
			}
		}
	}

	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, "Desktop"), nil
}

// output is a CSV file plus the state of its header row, which is
// synthesized from the first decoded scan and written once.
type output struct {
	path string
	file *os.File
	w    *bufio.Writer

	wroteHeaders bool
}

func newOutput(path string) (*output, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	return &output{path: path, file: f, w: bufio.NewWriter(f)}, nil
}

// newCombinedOutput creates the aggregate output file in dir, named
// after base with a combinedNN suffix that avoids existing files.
func newCombinedOutput(dir, base string) (*output, error) {
	name := strings.TrimSuffix(filepath.Base(base), filepath.Ext(base)) + "combined"
	for i := 0; ; i++ {
		path := filepath.Join(dir, fmt.Sprintf("%s%02d.csv", name, i))
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return newOutput(path)
		}
	}
}

func (o *output) Headers(headers []string) {
	if o == nil || o.wroteHeaders {
		return
	}

	o.wroteHeaders = true
	fmt.Fprintln(o.w, strings.Join(headers, ","))
}

func (o *output) Row(results []string) {
	if o == nil {
		return
	}

	fmt.Fprintln(o.w, strings.Join(results, ","))
}

func (o *output) Close() error {
	if o == nil {
		return nil
	}

	if err := o.w.Flush(); err != nil {
		o.file.Close()
		return err
	}

	return o.file.Close()
}

// csvChannels are the channel categories written to the CSV, in column
// order.
var csvChannels = [...]datfile.ChannelType{datfile.Pulse, datfile.Analog}

func extractFile(in input, combined *output) (err error) {
	out, err := newOutput(strings.TrimSuffix(in.path, filepath.Ext(in.path)) + ".csv")
	if err != nil {
		return err
	}

	defer func() {
		errClose := out.Close()
		if err == nil {
			err = errClose
		}
	}()

	if err := in.dat.Open(); err != nil {
		return err
	}
	defer in.dat.Close()

	elements := readElements(in.path)

	headers := []string{"Scan", "Time", "ACF"}
	index := 0

	return in.dat.Scans().ForEach(func(scan *dat.Scan) error {
		index++

		timestamp := float64(in.dat.Timestamp()) + float64(scan.Time)/1000.0
		results := []string{
			strconv.Itoa(index),
			fmt.Sprintf("%f", timestamp),
			fmt.Sprintf("%f", float64(scan.ACF)),
		}

		mass := 0
		errScan := scan.Masses().ForEach(func(m *datfile.Mass) error {
			if !out.wroteHeaders {
				label := elementLabel(elements, mass)
				for _, channel := range csvChannels {
					name := label + channel.String()[:1]
					for range m.Measurements[channel] {
						headers = append(headers, name)
					}
				}
				headers = append(headers, "")
			}

			for _, channel := range csvChannels {
				for _, v := range m.Measurements[channel] {
					results = append(results, formatValue(v))
				}
			}
			results = append(results, "")
			mass++

			return nil
		})

		if errScan != nil {
			// Malformed records abandon the scan, not the file; the
			// remaining scans are still extracted.
			if _, ok := errScan.(*datfile.Error); ok {
				fmt.Fprintf(os.Stderr, "warning: %s: scan %d: %s\n", in.path, index, errScan)
				return nil
			}

			return errScan
		}

		out.Headers(headers)
		combined.Headers(headers)
		out.Row(results)
		combined.Row(results)

		return nil
	})
}

func formatValue(v int64) string {
	if v < 0 {
		return strconv.FormatInt(-v, 10) + "*"
	}

	return strconv.FormatInt(v, 10)
}

// readElements reads the element names from the FIN2 companion file of
// a dat file, if present: line 8 holds comma-separated labels, the
// first column excluded. Without it the CSV falls back to MassNN
// labels.
func readElements(datPath string) []string {
	f, err := os.Open(strings.TrimSuffix(datPath, filepath.Ext(datPath)) + ".FIN2")
	if err != nil {
		return nil
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	var line string
	for i := 0; i < 8; i++ {
		if !scanner.Scan() {
			return nil
		}

		line = strings.TrimSpace(scanner.Text())
	}

	fields := strings.Split(line, ",")
	if len(fields) < 2 {
		return nil
	}

	return fields[1:]
}

func elementLabel(elements []string, index int) string {
	if index < len(elements) {
		return elements[index]
	}

	return fmt.Sprintf("Mass%02d", index+1)
}
