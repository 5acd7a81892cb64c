package journal_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/parleylabs/parley/pkg/journal"
)

var _ = Describe("MemoryRecorder", func() {
	var (
		recorder *journal.MemoryRecorder
		ctx      context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		recorder = journal.NewMemoryRecorder()
	})

	It("starts empty", func() {
		turns, err := recorder.List(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(turns).To(BeEmpty())
	})

	It("records and lists a turn", func() {
		turn := &journal.Turn{
			ID:         "req-1",
			Transcript: "Hello",
			Reply:      "Hi there",
			CreatedAt:  time.Now(),
		}

		Expect(recorder.Record(ctx, turn)).To(Succeed())

		turns, err := recorder.List(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(turns).To(HaveLen(1))
		Expect(turns[0].Transcript).To(Equal("Hello"))
		Expect(turns[0].Reply).To(Equal("Hi there"))
	})

	It("lists turns newest first", func() {
		for _, id := range []string{"req-1", "req-2", "req-3"} {
			Expect(recorder.Record(ctx, &journal.Turn{ID: id})).To(Succeed())
		}

		turns, err := recorder.List(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(turns).To(HaveLen(3))
		Expect(turns[0].ID).To(Equal("req-3"))
		Expect(turns[2].ID).To(Equal("req-1"))
	})

	It("closes without error", func() {
		Expect(recorder.Close()).To(Succeed())
	})
})
