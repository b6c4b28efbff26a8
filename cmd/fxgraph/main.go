// Command fxgraph compiles effect-chain descriptions and runs them
// over WAV files.
//
//	fxgraph list
//	fxgraph latency "delay:time=0.2|split(limiter;-)"
//	fxgraph render "distortion:drive=3|gain:db=-6" in.wav out.wav
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/cwbudde/wav"
	"github.com/go-audio/audio"

	"github.com/cwbudde/algo-fxgraph/effect"
	"github.com/cwbudde/algo-fxgraph/graph"
	"github.com/cwbudde/algo-fxgraph/preset"
)

var version = "0.1.0"

type cli struct {
	List    listCmd    `cmd:"" help:"List available effects and their parameters"`
	Latency latencyCmd `cmd:"" help:"Compile a chain and report its latency"`
	Render  renderCmd  `cmd:"" help:"Process a WAV file through a chain"`

	Version kong.VersionFlag `short:"v" help:"Show version information"`
}

func main() {
	c := &cli{}
	ctx := kong.Parse(c,
		kong.Name("fxgraph"),
		kong.Description("Composable effect graph renderer"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type listCmd struct{}

func (l *listCmd) Run() error {
	for _, desc := range effect.DefaultRegistry().List() {
		fmt.Printf("%-12s %-12s %s\n", desc.ID, desc.Category, desc.Name)

		for _, p := range desc.Params {
			unit := p.Unit
			if unit != "" {
				unit = " " + unit
			}

			fmt.Printf("    %-12s [%g, %g]%s (default %g)\n",
				p.Name, p.Min, p.Max, unit, p.Default)
		}
	}

	return nil
}

type latencyCmd struct {
	Chain      string  `arg:"" help:"Chain description, e.g. 'delay:time=0.2|gain:db=-3'"`
	SampleRate float64 `default:"48000" help:"Sample rate in Hz"`
}

func (l *latencyCmd) Run() error {
	node, err := preset.Parse(l.Chain)
	if err != nil {
		return err
	}

	g, err := graph.Compile(node, graph.WithSampleRate(l.SampleRate))
	if err != nil {
		return err
	}

	samples := g.TotalLatency()
	ms := float64(samples) / l.SampleRate * 1000

	fmt.Printf("effects: %d\n", len(g.Leaves()))
	fmt.Printf("latency: %d samples (%.2f ms at %g Hz)\n", samples, ms, l.SampleRate)

	return nil
}

type renderCmd struct {
	Chain     string `arg:"" help:"Chain description"`
	Input     string `arg:"" type:"existingfile" help:"Input WAV file"`
	Output    string `arg:"" help:"Output WAV file"`
	BlockSize int    `default:"1024" help:"Processing block size in samples"`
}

func (r *renderCmd) Run() error {
	node, err := preset.Parse(r.Chain)
	if err != nil {
		return err
	}

	samples, sampleRate, channels, err := readWAV(r.Input)
	if err != nil {
		return err
	}

	g, err := graph.Compile(node,
		graph.WithSampleRate(float64(sampleRate)),
		graph.WithBlockSize(r.BlockSize),
	)
	if err != nil {
		return err
	}

	switch channels {
	case 1:
		g.ProcessBlock(samples)

	case 2:
		n := len(samples) / 2
		left := make([]float64, n)
		right := make([]float64, n)

		for i := 0; i < n; i++ {
			left[i] = samples[i*2]
			right[i] = samples[i*2+1]
		}

		g.ProcessBlockStereo(left, right)

		for i := 0; i < n; i++ {
			samples[i*2] = left[i]
			samples[i*2+1] = right[i]
		}

	default:
		return fmt.Errorf("unsupported channel count %d", channels)
	}

	if err := writeWAV(r.Output, samples, sampleRate, channels); err != nil {
		return err
	}

	frames := len(samples) / channels
	fmt.Printf("rendered %d frames at %d Hz (%d channel(s))\n", frames, sampleRate, channels)
	fmt.Printf("latency: %d samples\n", g.TotalLatency())

	return nil
}

func readWAV(path string) (samples []float64, sampleRate, channels int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, 0, fmt.Errorf("invalid wav file: %s", path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, 0, err
	}

	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, 0, 0, fmt.Errorf("invalid wav buffer: %s", path)
	}

	bits := dec.BitDepth
	if bits == 0 {
		bits = 16
	}

	scale := 1.0 / float64(int(1)<<(bits-1))

	out := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		out[i] = float64(v) * scale
	}

	return out, buf.Format.SampleRate, buf.Format.NumChannels, nil
}

func writeWAV(path string, samples []float64, sampleRate, channels int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, channels, 1)
	defer enc.Close()

	data := make([]float32, len(samples))
	for i, v := range samples {
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}

		data[i] = float32(v)
	}

	buf := &audio.Float32Buffer{
		Format: &audio.Format{
			SampleRate:  sampleRate,
			NumChannels: channels,
		},
		Data:           data,
		SourceBitDepth: 16,
	}

	return enc.Write(buf)
}
