package timestep_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vovakirdan/tui-timestep/internal/timestep"
)

// runFrames feeds a frame partition through a policy and returns the final state.
func runFrames(p timestep.Policy, velocity float64, frames []time.Duration) *timestep.State {
	st := timestep.NewState(velocity)
	for _, d := range frames {
		p.Advance(st, d)
	}
	return st
}

func repeat(d time.Duration, n int) []time.Duration {
	out := make([]time.Duration, n)
	for i := range out {
		out[i] = d
	}
	return out
}

var _ = Describe("Variable", func() {
	It("steps exactly once per frame with the raw delta", func() {
		st := timestep.NewState(60)
		p := timestep.NewVariable()

		r := p.Advance(st, 250*time.Millisecond)

		Expect(r.Steps).To(Equal(1))
		Expect(r.Sizes).To(Equal([]time.Duration{250 * time.Millisecond}))
		Expect(r.Distance).To(BeNumerically("~", 15, 1e-9))
		Expect(st.Position).To(BeNumerically("~", 15, 1e-9))
	})
})

var _ = Describe("Fixed", func() {
	It("takes three 1/100s steps for 30ms at velocity 150", func() {
		st := timestep.NewState(150)
		p := timestep.NewFixed(100)

		r := p.Advance(st, 30*time.Millisecond)

		Expect(r.Steps).To(Equal(3))
		Expect(st.Position).To(Equal(4.5))
	})

	It("takes no step when the frame is shorter than the interval", func() {
		st := timestep.NewState(60)
		p := timestep.NewFixed(24)

		r := p.Advance(st, 10*time.Millisecond)

		Expect(r.Steps).To(BeZero())
		Expect(st.Position).To(BeZero())
		Expect(p.Accumulated()).To(Equal(10 * time.Millisecond))
	})

	It("catches up with several steps on a slow frame", func() {
		st := timestep.NewState(60)
		p := timestep.NewFixed(24)

		r := p.Advance(st, 200*time.Millisecond)

		Expect(r.Steps).To(Equal(4))
		Expect(r.Sizes).To(HaveEach(p.Interval()))
		Expect(p.Accumulated()).To(Equal(200*time.Millisecond - 4*p.Interval()))
	})

	It("is independent of how elapsed time is split into frames", func() {
		partitions := [][]time.Duration{
			repeat(100*time.Millisecond, 10),
			repeat(250*time.Millisecond, 4),
			{300 * time.Millisecond, 50 * time.Millisecond, 650 * time.Millisecond},
			repeat(time.Millisecond, 1000),
		}

		var positions []float64
		for _, frames := range partitions {
			positions = append(positions, runFrames(timestep.NewFixed(24), 60, frames).Position)
		}

		for _, pos := range positions[1:] {
			Expect(pos).To(Equal(positions[0]))
		}
	})

	It("keeps the position on the track", func() {
		st := runFrames(timestep.NewFixed(100), 150, repeat(37*time.Millisecond, 500))

		Expect(st.Position).To(BeNumerically(">=", 0))
		Expect(st.Position).To(BeNumerically("<", timestep.TrackLength))
	})

	It("clears the accumulator on reset", func() {
		st := timestep.NewState(60)
		p := timestep.NewFixed(24)
		p.Advance(st, 30*time.Millisecond)

		p.Reset()

		Expect(p.Accumulated()).To(BeZero())
	})

	Context("with a catch-up limit", func() {
		It("simulates at most the limit and drains the rest", func() {
			st := timestep.NewState(60)
			p := timestep.NewFixedLimited(5, 1)

			r := p.Advance(st, 2*time.Second)

			Expect(r.Steps).To(Equal(1))
			Expect(r.Drained).To(Equal(9))
			Expect(st.Position).To(BeNumerically("~", 12, 1e-9))
			Expect(p.Accumulated()).To(BeZero())
		})
	})
})

var _ = Describe("SemiFixed", func() {
	It("splits a 0.1s frame into six capped steps and one remainder", func() {
		st := timestep.NewState(60)
		p := timestep.NewSemiFixed(60)
		limit := p.Cap()

		r := p.Advance(st, 100*time.Millisecond)

		Expect(r.Steps).To(Equal(7))
		for _, size := range r.Sizes[:6] {
			Expect(size).To(Equal(limit))
		}
		Expect(r.Sizes[6]).To(Equal(100*time.Millisecond - 6*limit))
	})

	It("takes a single step when the frame is under the cap", func() {
		st := timestep.NewState(60)
		p := timestep.NewSemiFixed(60)

		r := p.Advance(st, 5*time.Millisecond)

		Expect(r.Steps).To(Equal(1))
		Expect(r.Sizes[0]).To(Equal(5 * time.Millisecond))
	})

	It("consumes the whole frame", func() {
		st := timestep.NewState(60)
		p := timestep.NewSemiFixed(60)

		r := p.Advance(st, 123*time.Millisecond)

		var total time.Duration
		for _, s := range r.Sizes {
			total += s
		}
		Expect(total).To(Equal(123 * time.Millisecond))
	})

	It("does nothing on a zero frame", func() {
		st := timestep.NewState(60)
		r := timestep.NewSemiFixed(60).Advance(st, 0)

		Expect(r.Steps).To(BeZero())
	})
})

var _ = Describe("Interpolated", func() {
	It("reports the leftover fraction of the interval as alpha", func() {
		st := timestep.NewState(150)
		p := timestep.NewInterpolated(100)

		r := p.Advance(st, 15*time.Millisecond)

		Expect(r.Steps).To(Equal(1))
		Expect(r.Alpha).To(BeNumerically("~", 0.5, 1e-9))
	})

	It("does not change the simulated state when rendering", func() {
		st := timestep.NewState(150)
		p := timestep.NewInterpolated(100)
		p.Advance(st, 25*time.Millisecond)
		pos := st.Position

		blended := st.Interpolate(p.Alpha())

		Expect(st.Position).To(Equal(pos))
		Expect(blended).To(BeNumerically("<=", pos))
	})
})

var _ = Describe("VSync", func() {
	It("never steps", func() {
		st := timestep.NewState(60)
		r := timestep.NewVSync().Advance(st, time.Second)

		Expect(r.Steps).To(BeZero())
		Expect(st.Position).To(BeZero())
	})
})

var _ = Describe("New", func() {
	DescribeTable("builds each policy kind",
		func(kind timestep.Kind) {
			p, err := timestep.New(kind, timestep.Options{Rate: 24, CapRate: 60})
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Kind()).To(Equal(kind))
		},
		Entry("variable", timestep.KindVariable),
		Entry("fixed", timestep.KindFixed),
		Entry("semifixed", timestep.KindSemiFixed),
		Entry("interpolated", timestep.KindInterpolated),
		Entry("vsync", timestep.KindVSync),
	)

	It("applies the catch-up limit to the interpolated policy", func() {
		p, err := timestep.New(timestep.KindInterpolated, timestep.Options{Rate: 5, MaxSteps: 1})
		Expect(err).NotTo(HaveOccurred())

		r := p.Advance(timestep.NewState(60), 2*time.Second)

		Expect(r.Steps).To(Equal(1))
		Expect(r.Drained).To(Equal(9))
		Expect(r.Alpha).To(BeZero())
	})

	It("rejects a fixed policy without a rate", func() {
		_, err := timestep.New(timestep.KindFixed, timestep.Options{})
		Expect(err).To(HaveOccurred())
	})

	It("rejects unknown kinds", func() {
		_, err := timestep.ParseKind("teleport")
		Expect(err).To(MatchError(ContainSubstring("unknown policy")))
	})
})
