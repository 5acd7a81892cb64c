package journal_test

import (
	"context"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/parleylabs/parley/pkg/journal"
)

var _ = Describe("SQLiteRecorder", func() {
	var (
		recorder *journal.SQLiteRecorder
		ctx      context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		var err error
		recorder, err = journal.NewSQLiteRecorder(":memory:")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if recorder != nil {
			recorder.Close()
		}
	})

	Describe("NewSQLiteRecorder", func() {
		It("creates a recorder with an in-memory database", func() {
			Expect(recorder).NotTo(BeNil())
		})

		It("creates a recorder with a file database", func() {
			tmpDir := GinkgoT().TempDir()
			dbPath := filepath.Join(tmpDir, "journal.db")

			r, err := journal.NewSQLiteRecorder(dbPath)
			Expect(err).NotTo(HaveOccurred())
			defer r.Close()

			// Verify file was created
			_, err = os.Stat(dbPath)
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("Record and List", func() {
		It("stores and retrieves a turn", func() {
			turn := &journal.Turn{
				ID:               "req-1",
				Transcript:       "What's the weather like?",
				Reply:            "I can't see outside, but I hope it's sunny.",
				CreatedAt:        time.Now().UTC(),
				CompleteMillis:   420,
				SynthesizeMillis: 310,
			}

			Expect(recorder.Record(ctx, turn)).To(Succeed())

			turns, err := recorder.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(turns).To(HaveLen(1))
			Expect(turns[0].ID).To(Equal("req-1"))
			Expect(turns[0].Transcript).To(Equal(turn.Transcript))
			Expect(turns[0].Reply).To(Equal(turn.Reply))
			Expect(turns[0].CompleteMillis).To(Equal(int64(420)))
			Expect(turns[0].SynthesizeMillis).To(Equal(int64(310)))
		})

		It("ignores a duplicate id", func() {
			turn := &journal.Turn{ID: "req-1", Transcript: "Hello", Reply: "Hi"}

			Expect(recorder.Record(ctx, turn)).To(Succeed())
			Expect(recorder.Record(ctx, turn)).To(Succeed())

			turns, err := recorder.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(turns).To(HaveLen(1))
		})

		It("lists turns newest first", func() {
			base := time.Now().UTC()
			for i, id := range []string{"req-1", "req-2", "req-3"} {
				turn := &journal.Turn{
					ID:        id,
					CreatedAt: base.Add(time.Duration(i) * time.Second),
				}
				Expect(recorder.Record(ctx, turn)).To(Succeed())
			}

			turns, err := recorder.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(turns).To(HaveLen(3))
			Expect(turns[0].ID).To(Equal("req-3"))
			Expect(turns[1].ID).To(Equal("req-2"))
			Expect(turns[2].ID).To(Equal("req-1"))
		})

		It("fills in CreatedAt when zero", func() {
			Expect(recorder.Record(ctx, &journal.Turn{ID: "req-1"})).To(Succeed())

			turns, err := recorder.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(turns[0].CreatedAt.IsZero()).To(BeFalse())
		})
	})
})
