package trajectory_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/unitrack/internal/integrators"
	"github.com/san-kum/unitrack/internal/rover"
	"github.com/san-kum/unitrack/internal/trajectory"
	"github.com/san-kum/unitrack/internal/unicycle"
)

var _ = Describe("Replay", func() {
	samples := trajectory.ReplaySamples{
		V:     []float64{0.1, 0.2, 0.3},
		Omega: []float64{0.0, 0.05, 0.1},
		X:     []float64{0, 0.5, 1.0},
		Y:     []float64{0, 0.1, 0.4},
		Theta: []float64{0, 0.2, 0.4},
	}

	It("reproduces the samples under a zero offset", func() {
		store, err := trajectory.Replay(samples, rover.Pose{}, 0.1)
		Expect(err).NotTo(HaveOccurred())

		poses := store.Poses()
		Expect(poses).To(HaveLen(3))
		for i, p := range poses {
			Expect(p.X).To(BeNumerically("~", samples.X[i], 1e-15))
			Expect(p.Y).To(BeNumerically("~", samples.Y[i], 1e-15))
			Expect(p.Theta).To(BeNumerically("~", samples.Theta[i], 1e-15))
		}
	})

	It("roto-translates poses by the offset", func() {
		offset := rover.Pose{X: 1, Y: 2, Theta: math.Pi / 2}
		store, err := trajectory.Replay(trajectory.ReplaySamples{
			V:     []float64{0.1},
			Omega: []float64{0.0},
			X:     []float64{1},
			Y:     []float64{0},
			Theta: []float64{0},
		}, offset, 0.1)
		Expect(err).NotTo(HaveOccurred())

		p := store.Poses()[0]
		Expect(p.X).To(BeNumerically("~", 1, 1e-12), "rotating (1,0) by pi/2 lands on the y axis")
		Expect(p.Y).To(BeNumerically("~", 3, 1e-12))
		Expect(p.Theta).To(BeNumerically("~", math.Pi/2, 1e-12))
	})

	It("recovers the samples by the inverse transform", func() {
		offset := rover.Pose{X: -0.7, Y: 1.3, Theta: 0.6}
		store, err := trajectory.Replay(samples, offset, 0.1)
		Expect(err).NotTo(HaveOccurred())

		sin, cos := math.Sincos(offset.Theta)
		for i, p := range store.Poses() {
			dx := p.X - offset.X
			dy := p.Y - offset.Y
			Expect(dx*cos+dy*sin).To(BeNumerically("~", samples.X[i], 1e-12))
			Expect(-dx*sin+dy*cos).To(BeNumerically("~", samples.Y[i], 1e-12))
			Expect(p.Theta-offset.Theta).To(BeNumerically("~", samples.Theta[i], 1e-12))
		}
	})

	It("stores commands unchanged regardless of the offset", func() {
		store, err := trajectory.Replay(samples, rover.Pose{X: 5, Y: -5, Theta: 2}, 0.1)
		Expect(err).NotTo(HaveOccurred())

		cmds := store.Commands()
		Expect(cmds).To(HaveLen(3))
		for i, c := range cmds {
			Expect(c.V).To(Equal(samples.V[i]))
			Expect(c.Omega).To(Equal(samples.Omega[i]))
		}
	})

	It("keeps an unwrapped heading profile continuous", func() {
		store, err := trajectory.Replay(trajectory.ReplaySamples{
			V:     []float64{0.1, 0.1},
			Omega: []float64{0.5, 0.5},
			X:     []float64{0, 0},
			Y:     []float64{0, 0},
			Theta: []float64{3.0, 3.3},
		}, rover.Pose{Theta: 0.5}, 0.1)
		Expect(err).NotTo(HaveOccurred())

		Expect(store.Poses()[0].Theta).To(BeNumerically("~", 3.5, 1e-12))
		Expect(store.Poses()[1].Theta).To(BeNumerically("~", 3.8, 1e-12), "no wrap at pi")
	})

	It("rejects mismatched command sample lengths", func() {
		_, err := trajectory.Replay(trajectory.ReplaySamples{
			V:     []float64{0.1, 0.2},
			Omega: []float64{0.1},
		}, rover.Pose{}, 0.1)
		Expect(err).To(MatchError(rover.ErrSampleLengths))
	})

	It("rejects mismatched pose sample lengths", func() {
		_, err := trajectory.Replay(trajectory.ReplaySamples{
			X:     []float64{0, 1},
			Y:     []float64{0, 1},
			Theta: []float64{0},
		}, rover.Pose{}, 0.1)
		Expect(err).To(MatchError(rover.ErrSampleLengths))
	})

	It("rejects a non-positive step time", func() {
		_, err := trajectory.Replay(samples, rover.Pose{}, 0)
		Expect(err).To(MatchError(rover.ErrNonPositiveStep))
	})
})

var _ = Describe("Simulate", func() {
	newModel := func(dt float64) rover.Model {
		m, err := unicycle.NewModel(dt, integrators.NewEuler())
		Expect(err).NotTo(HaveOccurred())
		return m
	}

	It("integrates a straight line sample by sample", func() {
		dt := 0.1
		cmds := make([]rover.Command, 5)
		for i := range cmds {
			cmds[i] = rover.Command{V: 0.2}
		}

		store, err := trajectory.Simulate(cmds, rover.Pose{}, newModel(dt))
		Expect(err).NotTo(HaveOccurred())
		Expect(store.Len()).To(Equal(5))
		Expect(store.Dt()).To(Equal(dt))

		for i, p := range store.Poses() {
			Expect(p.X).To(BeNumerically("~", float64(i+1)*0.2*dt, 1e-12))
			Expect(p.Y).To(BeZero())
			Expect(p.Theta).To(BeZero())
		}
	})

	It("records the pose reached after each command", func() {
		store, err := trajectory.Simulate([]rover.Command{{V: 1}}, rover.Pose{}, newModel(0.1))
		Expect(err).NotTo(HaveOccurred())

		// The offset pose itself is not stored.
		Expect(store.Poses()[0].X).To(BeNumerically("~", 0.1, 1e-12))
	})

	It("pairs each stored pose with its command", func() {
		cmds := []rover.Command{{V: 0.1}, {V: 0.2, Omega: 0.3}}
		store, err := trajectory.Simulate(cmds, rover.Pose{}, newModel(0.05))
		Expect(err).NotTo(HaveOccurred())

		Expect(store.Commands()).To(HaveLen(2))
		Expect(store.Commands()[1]).To(Equal(cmds[1]))
	})

	It("starts from the offset pose", func() {
		offset := rover.Pose{X: 1, Y: 1, Theta: math.Pi / 2}
		cmds := make([]rover.Command, 4)
		for i := range cmds {
			cmds[i] = rover.Command{V: 0.1}
		}

		store, err := trajectory.Simulate(cmds, offset, newModel(0.1))
		Expect(err).NotTo(HaveOccurred())

		for i, p := range store.Poses() {
			Expect(p.X).To(BeNumerically("~", 1, 1e-9), "heading pi/2 moves along y only")
			Expect(p.Y).To(BeNumerically("~", 1+float64(i+1)*0.1*0.1, 1e-9))
			Expect(p.Theta).To(BeNumerically("~", math.Pi/2, 1e-12))
		}
	})

	It("turns in place without translating", func() {
		cmds := make([]rover.Command, 4)
		for i := range cmds {
			cmds[i] = rover.Command{Omega: 0.5}
		}

		store, err := trajectory.Simulate(cmds, rover.Pose{X: 2, Y: 3}, newModel(0.1))
		Expect(err).NotTo(HaveOccurred())

		last := store.Poses()[3]
		Expect(last.X).To(BeNumerically("~", 2, 1e-12))
		Expect(last.Y).To(BeNumerically("~", 3, 1e-12))
		Expect(last.Theta).To(BeNumerically("~", 0.2, 1e-12))
	})

	It("builds an empty store from no commands", func() {
		store, err := trajectory.Simulate(nil, rover.Pose{}, newModel(0.1))
		Expect(err).NotTo(HaveOccurred())
		Expect(store.Empty()).To(BeTrue())
		Expect(store.EndTime()).To(BeZero())
	})
})
