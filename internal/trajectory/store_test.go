package trajectory_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/unitrack/internal/rover"
	"github.com/san-kum/unitrack/internal/trajectory"
)

var _ = Describe("Store", func() {
	var store *trajectory.Store

	BeforeEach(func() {
		var err error
		store, err = trajectory.Replay(trajectory.ReplaySamples{
			V:     []float64{0.1, 0.2, 0.3, 0.4},
			Omega: []float64{0.0, 0.1, 0.2, 0.3},
			X:     []float64{0, 1, 2, 3},
			Y:     []float64{0, 0.5, 1, 1.5},
			Theta: []float64{0, 0.1, 0.2, 0.3},
		}, rover.Pose{}, 0.05)
		Expect(err).NotTo(HaveOccurred())
	})

	It("reports its shape", func() {
		Expect(store.Len()).To(Equal(4))
		Expect(store.Empty()).To(BeFalse())
		Expect(store.Dt()).To(Equal(0.05))
		Expect(store.EndTime()).To(BeNumerically("~", 0.2, 1e-12))
	})

	Describe("time lookup", func() {
		It("returns the sample at an exact grid time", func() {
			p, err := store.PoseAt(0.05)
			Expect(err).NotTo(HaveOccurred())
			Expect(p.X).To(BeNumerically("~", 1, 1e-12))

			c, err := store.CommandAt(0.05)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.V).To(BeNumerically("~", 0.2, 1e-12))
		})

		It("rounds to the nearest sample", func() {
			p, err := store.PoseAt(0.12)
			Expect(err).NotTo(HaveOccurred())
			Expect(p.X).To(BeNumerically("~", 2, 1e-12), "0.12 is nearest to sample 2 at t=0.10")

			p, err = store.PoseAt(0.13)
			Expect(err).NotTo(HaveOccurred())
			Expect(p.X).To(BeNumerically("~", 3, 1e-12), "0.13 is nearest to sample 3 at t=0.15")
		})

		It("clamps negative times to the first sample", func() {
			p, err := store.PoseAt(-2.0)
			Expect(err).NotTo(HaveOccurred())
			Expect(p.X).To(BeNumerically("~", 0, 1e-12))

			c, err := store.CommandAt(-2.0)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.V).To(BeNumerically("~", 0.1, 1e-12))
		})

		It("holds the last sample past the end", func() {
			p, err := store.PoseAt(100)
			Expect(err).NotTo(HaveOccurred())
			Expect(p.X).To(BeNumerically("~", 3, 1e-12))

			c, err := store.CommandAt(100)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.V).To(BeNumerically("~", 0.4, 1e-12))
		})

		It("clamps each sequence by its own length", func() {
			short, err := trajectory.Replay(trajectory.ReplaySamples{
				V:     []float64{0.1, 0.2},
				Omega: []float64{0.0, 0.0},
				X:     []float64{0, 1, 2, 3},
				Y:     []float64{0, 0, 0, 0},
				Theta: []float64{0, 0, 0, 0},
			}, rover.Pose{}, 0.05)
			Expect(err).NotTo(HaveOccurred())

			p, err := short.PoseAt(1.0)
			Expect(err).NotTo(HaveOccurred())
			Expect(p.X).To(BeNumerically("~", 3, 1e-12))

			c, err := short.CommandAt(1.0)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.V).To(BeNumerically("~", 0.2, 1e-12))
		})
	})

	Describe("empty store", func() {
		It("rejects lookups", func() {
			empty, err := trajectory.Replay(trajectory.ReplaySamples{}, rover.Pose{}, 0.05)
			Expect(err).NotTo(HaveOccurred())
			Expect(empty.Empty()).To(BeTrue())
			Expect(empty.EndTime()).To(BeZero())

			_, err = empty.PoseAt(0)
			Expect(err).To(MatchError(rover.ErrEmptyTrajectory))

			_, err = empty.CommandAt(0)
			Expect(err).To(MatchError(rover.ErrEmptyTrajectory))
		})

		It("is empty when only poses are present", func() {
			posesOnly, err := trajectory.Replay(trajectory.ReplaySamples{
				X:     []float64{0, 1},
				Y:     []float64{0, 0},
				Theta: []float64{0, 0},
			}, rover.Pose{}, 0.05)
			Expect(err).NotTo(HaveOccurred())
			Expect(posesOnly.Empty()).To(BeTrue())
		})
	})

	Describe("Describe", func() {
		It("renders a decimated table with a final row", func() {
			out := store.Describe(2, 100)
			Expect(out).To(ContainSubstring("x \t| y \t| theta \t| v \t| omega"))
			Expect(out).To(ContainSubstring("----"))

			lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
			// header + samples 0 and 2 + separator + final sample
			Expect(lines).To(HaveLen(5))
		})

		It("caps the number of decimated rows", func() {
			out := store.Describe(1, 2)
			lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
			// header + 2 capped rows + separator + final sample
			Expect(lines).To(HaveLen(5))
		})
	})
})
