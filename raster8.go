// This file is part of Raster8.
//
// Raster8 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Raster8 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Raster8.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/bradleyjkemp/memviz"
	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/jetsetilly/raster8/curated"
	"github.com/jetsetilly/raster8/hardware/instance"
	"github.com/jetsetilly/raster8/hardware/machine"
	"github.com/jetsetilly/raster8/hardware/vic/registers"
	"github.com/jetsetilly/raster8/hardware/vic/timing"
	"github.com/jetsetilly/raster8/logger"
	"github.com/jetsetilly/raster8/modalflag"
	"github.com/jetsetilly/raster8/prefs"
	"github.com/jetsetilly/raster8/statsview"
	"github.com/jetsetilly/raster8/version"
)

// exit values
const (
	exitParse = 10
	exitMode  = 20
)

// Sentinel errors.
const (
	tooManyArgs = "too many arguments for %s mode"
	notTerminal = "stepping requires a terminal (fd %d)"
)

func main() {
	os.Exit(launch(os.Args[1:], os.Stdout))
}

// launch parses the arguments and runs the selected mode. returns the value
// to be used with os.Exit().
func launch(args []string, output io.Writer) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("RUN", "TRACE", "VERSION")

	stats := md.AddBool("statsview", false, "run the statistics server")
	log := md.AddBool("log", false, "echo log to stdout")
	prf := md.AddString("prefs", "", "preferences for the run: key::value; key::value")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return 0
	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return exitParse
	}

	if *log {
		logger.SetEcho(output)
	} else {
		logger.SetEcho(nil)
	}

	if *stats {
		if !statsview.Available() {
			fmt.Fprintln(output, "* statsview not available in this build")
		}
		statsview.Launch(output)
	}

	if *prf != "" {
		prefs.PushCommandLineStack(*prf)
		defer prefs.PopCommandLineStack()
	}

	switch md.Mode() {
	case "RUN":
		err = run(md, output)
	case "TRACE":
		err = trace(md, output)
	case "VERSION":
		fmt.Fprintln(output, version.String())
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md, err)
		return exitMode
	}

	return 0
}

// flags common to both modes. the machine is created after parsing
type common struct {
	profile *string
	rom     *string
	display *bool
}

func addCommon(md *modalflag.Modes) common {
	return common{
		profile: md.AddString("profile", "", "timing profile: PAL, NTSC, NTSC-OLD, PAL-N"),
		rom:     md.AddString("rom", "", "character or system ROM image"),
		display: md.AddBool("display", true, "enable the display before running"),
	}
}

// create the machine named by the first remaining argument. a missing
// argument selects the C64
func (c common) machine(md *modalflag.Modes) (*machine.Machine, error) {
	if len(md.RemainingArgs()) > 1 {
		return nil, curated.Errorf(tooManyArgs, md)
	}

	model := machine.C64
	if arg := md.GetArg(0); arg != "" {
		var err error
		model, err = machine.ParseModel(arg)
		if err != nil {
			return nil, err
		}
	}

	ins, err := instance.NewInstance(instance.Main, nil)
	if err != nil {
		return nil, err
	}

	if *c.profile != "" {
		err = ins.Prefs.Profile.Set(*c.profile)
		if err != nil {
			return nil, err
		}
	}

	m, err := machine.NewMachine(model, ins)
	if err != nil {
		return nil, err
	}

	if *c.rom != "" {
		data, err := os.ReadFile(*c.rom)
		if err != nil {
			return nil, err
		}
		err = m.Mem.LoadROM(data)
		if err != nil {
			return nil, err
		}
	}

	if *c.display {
		v := uint8(registers.DEN | registers.RSEL | 3)
		if model.Variant() == timing.TED {
			m.Store(registers.TEDControl1, v, 4)
		} else {
			m.Store(registers.VICControlY, v, 4)
		}
	}

	return m, nil
}

func run(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	c := addCommon(md)
	frames := md.AddInt("frames", 50, "number of frames to run")
	pngFile := md.AddString("png", "", "save the last frame to a PNG file")
	memvizFile := md.AddString("memviz", "", "save a graph of the timing profile and processor to a dot file")
	snapFile := md.AddString("snapshot", "", "save a snapshot of the machine after the run")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	m, err := c.machine(md)
	if err != nil {
		return err
	}

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	defer signal.Stop(intChan)

	for range *frames {
		select {
		case <-intChan:
			fmt.Fprintln(output, "\r! interrupted")
			return nil
		default:
		}
		m.RunFrames(1)
	}

	fmt.Fprintln(output, m)
	fmt.Fprintln(output, m.CPU.Stats)
	for id := range m.Render.Rasters() {
		fmt.Fprintf(output, "%s: %s\n", m.Render.Label(id), m.Render.Stats(id))
	}

	if *pngFile != "" {
		err = saveFile(*pngFile, func(f io.Writer) error {
			return m.Render.SavePNG(m.Raster, f)
		})
		if err != nil {
			return err
		}
	}

	if *memvizFile != "" {
		err = saveFile(*memvizFile, func(f io.Writer) error {
			memviz.Map(f, m.VIC.Profile(), m.CPU)
			return nil
		})
		if err != nil {
			return err
		}
	}

	if *snapFile != "" {
		data, err := m.SaveSnapshot()
		if err != nil {
			return err
		}
		err = os.WriteFile(*snapFile, data, 0o644)
		if err != nil {
			return err
		}
	}

	return nil
}

func saveFile(filename string, f func(io.Writer) error) error {
	fh, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer fh.Close()
	return f(fh)
}

func trace(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	c := addCommon(md)
	lines := md.AddInt("lines", 0, "number of lines to trace. zero traces one frame")
	step := md.AddBool("step", false, "wait for a key press after every line")
	snapFile := md.AddString("snapshot", "", "load a snapshot before tracing")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	m, err := c.machine(md)
	if err != nil {
		return err
	}

	if *snapFile != "" {
		data, err := os.ReadFile(*snapFile)
		if err != nil {
			return err
		}
		err = m.LoadSnapshot(data)
		if err != nil {
			return err
		}
	}

	n := *lines
	if n <= 0 {
		n = m.VIC.Profile().LinesPerFrame
	}

	var key func() bool
	if *step {
		var done func()
		key, done, err = keyPress()
		if err != nil {
			return err
		}
		defer done()
	}

	for range n {
		fmt.Fprintf(output, "%-10d %s\n", m.Clock(), m.VIC)
		if key != nil && !key() {
			return nil
		}
		m.StepLine()
	}

	fmt.Fprintln(output, m.CPU.Stats)

	return nil
}

// keyPress puts the terminal into cbreak mode and returns a function that
// waits for a single key press. the function returns false if the key is q
// or escape. the done function restores the terminal.
func keyPress() (func() bool, func(), error) {
	fd := os.Stdin.Fd()
	if !term.IsTerminal(int(fd)) {
		return nil, nil, curated.Errorf(notTerminal, fd)
	}

	var canAttr, cbreakAttr unix.Termios
	err := termios.Tcgetattr(fd, &canAttr)
	if err != nil {
		return nil, nil, err
	}
	cbreakAttr = canAttr
	termios.Cfmakecbreak(&cbreakAttr)
	err = termios.Tcsetattr(fd, termios.TCSANOW, &cbreakAttr)
	if err != nil {
		return nil, nil, err
	}

	r := bufio.NewReader(os.Stdin)
	key := func() bool {
		b, err := r.ReadByte()
		if err != nil {
			return false
		}
		return b != 'q' && b != 0x1b
	}

	done := func() {
		_ = termios.Tcsetattr(fd, termios.TCSANOW, &canAttr)
	}

	return key, done, nil
}
