package effect

// DefaultRegistry returns a Registry pre-populated with the built-in
// roster. Categories follow the algo-dsp package layout.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.MustRegister(Descriptor{
		ID: "identity", Category: "util", Name: "Passthrough",
	}, func(float64) (Instance, error) {
		return NewIdentity(), nil
	})

	r.MustRegister(Descriptor{
		ID: "gain", Category: "util", Name: "Gain",
		Params: gainParams(),
	}, func(sampleRate float64) (Instance, error) {
		return NewGain(sampleRate)
	})

	r.MustRegister(Descriptor{
		ID: "delay", Category: "time", Name: "Feedback Delay",
		Params: delayParams(),
	}, newDelayFX)

	r.MustRegister(Descriptor{
		ID: "reverb", Category: "time", Name: "FDN Reverb",
		Params: reverbParams(),
	}, newReverbFX)

	r.MustRegister(Descriptor{
		ID: "chorus", Category: "modulation", Name: "Chorus",
		Params: chorusParams(),
	}, newChorusFX)

	r.MustRegister(Descriptor{
		ID: "flanger", Category: "modulation", Name: "Flanger",
		Params: flangerParams(),
	}, newFlangerFX)

	r.MustRegister(Descriptor{
		ID: "tremolo", Category: "modulation", Name: "Tremolo",
		Params: tremoloParams(),
	}, newTremoloFX)

	r.MustRegister(Descriptor{
		ID: "distortion", Category: "drive", Name: "Distortion",
		Params: distortionParams(),
	}, newDistortionFX)

	r.MustRegister(Descriptor{
		ID: "bitcrusher", Category: "drive", Name: "Bit Crusher",
		Params: bitCrusherParams(),
	}, newBitCrusherFX)

	r.MustRegister(Descriptor{
		ID: "moog", Category: "filter", Name: "Moog Ladder Filter",
		Params: moogParams(),
	}, newMoogFX)

	r.MustRegister(Descriptor{
		ID: "compressor", Category: "dynamics", Name: "Compressor",
		Params: compressorParams(),
	}, newCompressorFX)

	r.MustRegister(Descriptor{
		ID: "limiter", Category: "dynamics", Name: "Lookahead Limiter",
		Params: limiterParams(),
	}, newLimiterFX)

	return r
}
