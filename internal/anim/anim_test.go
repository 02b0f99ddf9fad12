package anim_test

import (
	"context"
	"image"
	"image/gif"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/sirsim/internal/anim"
	"github.com/san-kum/sirsim/internal/dynamo"
	"github.com/san-kum/sirsim/internal/integrators"
	"github.com/san-kum/sirsim/internal/models"
	"github.com/san-kum/sirsim/internal/render"
	"github.com/san-kum/sirsim/internal/sim"
)

var params = models.Params{N: 1, B: 0.3, K: 0.1}

func integrate(points int) *sim.Trajectory {
	grid, err := sim.NewGrid(0, 140, points, true)
	Expect(err).NotTo(HaveOccurred())

	rk45, err := integrators.Get("rk45")
	Expect(err).NotTo(HaveOccurred())

	s := sim.New(models.NewSIR(params), rk45, dynamo.DefaultConfig())
	traj, err := s.Run(context.Background(), models.InitialCondition(models.DefaultPopulation()), grid)
	Expect(err).NotTo(HaveOccurred())
	return traj
}

func smallSurface() *render.Surface {
	st := render.DefaultStyle()
	st.Width = 320
	st.Height = 160
	return render.NewSurface(st)
}

// cancelingEncoder cancels its context once n frames have been added.
type cancelingEncoder struct {
	anim.Encoder
	n      int
	cancel context.CancelFunc
}

func (e *cancelingEncoder) Add(img image.Image) error {
	if err := e.Encoder.Add(img); err != nil {
		return err
	}
	if e.n--; e.n == 0 {
		e.cancel()
	}
	return nil
}

var _ = Describe("Sequence", func() {
	It("yields 1..n once without repeat", func() {
		seq := anim.NewSequence(3, false)
		var got []int
		for f, ok := seq.Next(); ok; f, ok = seq.Next() {
			got = append(got, f)
		}
		Expect(got).To(Equal([]int{1, 2, 3}))

		_, ok := seq.Next()
		Expect(ok).To(BeFalse())
	})

	It("wraps around when repeating", func() {
		seq := anim.NewSequence(2, true)
		var got []int
		for i := 0; i < 5; i++ {
			f, ok := seq.Next()
			Expect(ok).To(BeTrue())
			got = append(got, f)
		}
		Expect(got).To(Equal([]int{1, 2, 1, 2, 1}))
	})

	It("restarts after Reset", func() {
		seq := anim.NewSequence(4, false)
		seq.Next()
		seq.Next()
		seq.Reset()
		f, ok := seq.Next()
		Expect(ok).To(BeTrue())
		Expect(f).To(Equal(1))
	})

	It("is empty for n < 1", func() {
		_, ok := anim.NewSequence(0, true).Next()
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("Open", func() {
	It("rejects unknown extensions", func() {
		_, err := anim.Open(filepath.Join(GinkgoT().TempDir(), "out.mp4"), anim.DefaultOptions())
		Expect(err).To(MatchError(anim.ErrUnsupportedFormat))
	})

	It("fails on an unwritable path", func() {
		path := filepath.Join(GinkgoT().TempDir(), "missing", "dir", "out.gif")
		_, err := anim.Open(path, anim.DefaultOptions())
		Expect(err).To(HaveOccurred())
	})

	It("removes the file when a GIF is aborted", func() {
		path := filepath.Join(GinkgoT().TempDir(), "out.gif")
		enc, err := anim.Open(path, anim.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())
		Expect(path).To(BeAnExistingFile())

		Expect(enc.Add(image.NewRGBA(image.Rect(0, 0, 8, 8)))).To(Succeed())
		Expect(enc.Abort()).To(Succeed())
		Expect(path).NotTo(BeAnExistingFile())

		Expect(enc.Add(image.NewRGBA(image.Rect(0, 0, 8, 8)))).To(MatchError(anim.ErrEncoderClosed))
		Expect(enc.Abort()).To(MatchError(anim.ErrEncoderClosed))
	})

	It("leaves no GIF behind when closed without frames", func() {
		path := filepath.Join(GinkgoT().TempDir(), "empty.gif")
		enc, err := anim.Open(path, anim.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())

		Expect(enc.Close()).To(HaveOccurred())
		Expect(path).NotTo(BeAnExistingFile())
	})

	It("removes the file when an AVI is aborted", func() {
		path := filepath.Join(GinkgoT().TempDir(), "out.avi")
		opts := anim.DefaultOptions()
		opts.Width, opts.Height = 8, 8
		enc, err := anim.Open(path, opts)
		Expect(err).NotTo(HaveOccurred())

		Expect(enc.Add(image.NewRGBA(image.Rect(0, 0, 8, 8)))).To(Succeed())
		Expect(enc.Abort()).To(Succeed())
		Expect(path).NotTo(BeAnExistingFile())
	})

	It("requires a frame size for AVI", func() {
		_, err := anim.Open(filepath.Join(GinkgoT().TempDir(), "out.avi"), anim.DefaultOptions())
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Driver", func() {
	var (
		traj   *sim.Trajectory
		driver *anim.Driver
		dir    string
	)

	BeforeEach(func() {
		traj = integrate(140)
		driver = anim.NewDriver(smallSurface(), traj, params)
		dir = GinkgoT().TempDir()
	})

	It("starts in Running", func() {
		Expect(driver.State()).To(Equal(anim.Running))
		Expect(driver.State().String()).To(Equal("running"))
	})

	It("writes a looping GIF with one frame per grid point", func() {
		path := filepath.Join(dir, "SimulacionCOVID.gif")
		enc, err := anim.Open(path, anim.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())

		Expect(driver.Save(context.Background(), enc)).To(Succeed())
		Expect(driver.State()).To(Equal(anim.Done))
		Expect(driver.Frames()).To(Equal(140))

		f, err := os.Open(path)
		Expect(err).NotTo(HaveOccurred())
		defer f.Close()

		g, err := gif.DecodeAll(f)
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Image).To(HaveLen(140))
		Expect(g.LoopCount).To(Equal(0))
		Expect(g.Image[0].Bounds().Dx()).To(Equal(320))
	})

	It("refuses to save twice", func() {
		enc, err := anim.Open(filepath.Join(dir, "a.gif"), anim.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())
		Expect(driver.Save(context.Background(), enc)).To(Succeed())

		enc, err = anim.Open(filepath.Join(dir, "b.gif"), anim.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())
		Expect(driver.Save(context.Background(), enc)).To(MatchError(anim.ErrFinalized))

		_, err = driver.Render(1)
		Expect(err).To(MatchError(anim.ErrFinalized))
	})

	It("stays Running when canceled", func() {
		path := filepath.Join(dir, "c.gif")
		enc, err := anim.Open(path, anim.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		Expect(driver.Save(ctx, enc)).To(MatchError(context.Canceled))
		Expect(driver.State()).To(Equal(anim.Running))
		Expect(path).NotTo(BeAnExistingFile())
	})

	It("discards a partly written GIF when canceled mid-run", func() {
		path := filepath.Join(dir, "partial.gif")
		enc, err := anim.Open(path, anim.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		err = driver.Save(ctx, &cancelingEncoder{Encoder: enc, n: 3, cancel: cancel})
		Expect(err).To(MatchError(context.Canceled))
		Expect(driver.Frames()).To(Equal(3))
		Expect(driver.State()).To(Equal(anim.Running))
		Expect(path).NotTo(BeAnExistingFile())
	})

	It("writes a Motion JPEG AVI", func() {
		path := filepath.Join(dir, "out.avi")
		opts := anim.DefaultOptions()
		opts.Width, opts.Height = 320, 160

		enc, err := anim.Open(path, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(driver.Save(context.Background(), enc)).To(Succeed())

		info, err := os.Stat(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(info.Size()).To(BeNumerically(">", 0))
	})
})
