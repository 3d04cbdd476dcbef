package panel_test

import (
	"bytes"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/chaospanel/internal/panel"
	"github.com/san-kum/chaospanel/internal/param"
)

var _ = Describe("Panel", func() {
	var (
		store *recordingStore
		tree  *panel.Tree
		p     *panel.Panel
	)

	BeforeEach(func() {
		store = &recordingStore{}
		tree = panel.NewTree()
		p = panel.New(store, tree)
	})

	Describe("scalar sliders", func() {
		It("writes an int and relabels on input", func() {
			Expect(p.Scalar(0, "Steps/frame", param.Int, param.Spec{Value: 10, Min: 0, Max: 100})).To(Succeed())
			Expect(tree.Labels()).To(Equal([]string{"Steps/frame = 10"}))

			Expect(tree.Input(panel.SliderID(0), "42")).To(Succeed())

			Expect(store.writes).To(Equal([]param.Write{{Code: 0, Kind: param.KindInt, Int: 42}}))
			Expect(tree.LabelFor(panel.SliderID(0))).To(Equal("Steps/frame = 42"))
		})

		It("writes exactly one float per input across the range", func() {
			Expect(p.Scalar(6, "Gravity", param.Float, param.Spec{Value: 9.81, Min: 0, Max: 20, Step: 0.01})).To(Succeed())

			for i, raw := range []string{"0", "0.01", "9.81", "12.5", "20"} {
				Expect(tree.Input(panel.SliderID(6), raw)).To(Succeed())
				Expect(store.writes).To(HaveLen(i + 1))
				last := store.writes[i]
				Expect(last.Kind).To(Equal(param.KindFloat))
				Expect(param.FormatNumber(last.Float)).To(Equal(raw))
				Expect(tree.LabelFor(panel.SliderID(6))).To(Equal("Gravity = " + raw))
			}
		})

		It("applies bounds and the default step to the control", func() {
			Expect(p.Scalar(12, "Angle 1 discretization size", param.Int, param.Spec{Value: 128, Min: 32, Max: 2048})).To(Succeed())

			e, err := tree.Element(panel.SliderID(12))
			Expect(err).NotTo(HaveOccurred())
			Expect(e.Attrs).To(Equal(panel.RangeAttrs{Min: 32, Max: 2048, Step: 1, Value: 128}))
			Expect(e.Value).To(Equal("128"))
		})

		It("forwards out-of-range programmatic values unclamped", func() {
			Expect(p.Scalar(2, "Mass 1 (kg)", param.Float, param.Spec{Value: 1, Min: 0.1, Max: 10, Step: 0.01})).To(Succeed())

			Expect(tree.Input(panel.SliderID(2), "25")).To(Succeed())
			Expect(store.writes).To(ConsistOf(param.Write{Code: 2, Kind: param.KindFloat, Float: 25}))
		})

		It("drops unparseable input without touching store or label", func() {
			var logs bytes.Buffer
			p = panel.New(store, tree, panel.WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
			Expect(p.Scalar(1, "Time step (s)", param.Float, param.Spec{Value: 0.001, Min: -0.01, Max: 0.01, Step: 0.0001})).To(Succeed())

			Expect(tree.Input(panel.SliderID(1), "fast")).To(Succeed())

			Expect(store.writes).To(BeEmpty())
			Expect(tree.LabelFor(panel.SliderID(1))).To(Equal("Time step (s) = 0.001"))
			Expect(logs.String()).To(ContainSubstring("input dropped"))
		})

		It("rejects non-scalar tags", func() {
			err := p.Scalar(3, "Origin", param.Vec3, param.Spec{})
			Expect(err).To(MatchError(param.ErrUnknownType))
		})
	})

	Describe("checkboxes", func() {
		It("returns the store to its original value after two toggles", func() {
			Expect(p.Checkbox(16, "Use GPU", true)).To(Succeed())

			Expect(tree.Toggle(panel.CheckboxID(16))).To(Succeed())
			Expect(tree.Toggle(panel.CheckboxID(16))).To(Succeed())

			Expect(store.writes).To(Equal([]param.Write{
				{Code: 16, Kind: param.KindBool, Bool: false},
				{Code: 16, Kind: param.KindBool, Bool: true},
			}))
			Expect(tree.Labels()).To(Equal([]string{"Use GPU"}))
		})

		It("logs the checked state", func() {
			var logs bytes.Buffer
			h := slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})
			p = panel.New(store, tree, panel.WithLogger(slog.New(h)))
			Expect(p.Checkbox(16, "Use GPU", false)).To(Succeed())

			Expect(tree.Toggle(panel.CheckboxID(16))).To(Succeed())
			Expect(logs.String()).To(ContainSubstring("checked=true"))
		})
	})

	Describe("vector slider groups", func() {
		origin := param.VecSpec{
			Value: []float64{0, 0, 0},
			Min:   []float64{-10, -10, -10},
			Max:   []float64{10, 10, 10},
			Step:  []float64{0.5, 0.5, 0.5},
		}

		It("writes one component and shows the whole vector", func() {
			Expect(p.Vector(20, "Origin", param.Vec3, origin)).To(Succeed())
			Expect(tree.Labels()).To(Equal([]string{"Origin = (0,0,0)"}))

			Expect(tree.Input(panel.ComponentID(20, 1), "3.5")).To(Succeed())

			cache, ok := p.VectorCache("Origin")
			Expect(ok).To(BeTrue())
			Expect(cache.Values()).To(Equal([]float64{0, 3.5, 0}))
			Expect(store.writes).To(Equal([]param.Write{{Code: 20, Kind: param.KindVec, N: 3, Index: 1, Float: 3.5}}))
			Expect(tree.Labels()).To(Equal([]string{"Origin = (0,3.5,0)"}))
		})

		It("keeps earlier component edits when another component changes", func() {
			Expect(p.Vector(20, "Origin", param.Vec3, origin)).To(Succeed())

			Expect(tree.Input(panel.ComponentID(20, 0), "1")).To(Succeed())
			Expect(tree.Input(panel.ComponentID(20, 2), "-2")).To(Succeed())

			cache, _ := p.VectorCache("Origin")
			Expect(cache.Values()).To(Equal([]float64{1, 0, -2}))
			Expect(tree.Labels()).To(Equal([]string{"Origin = (1,0,-2)"}))
			Expect(store.writes).To(HaveLen(2))
			Expect(store.writes[1].Index).To(Equal(2))
		})

		It("parses integer vectors as ints", func() {
			spec := param.VecSpec{Value: []float64{4, 4}, Min: []float64{1, 1}, Max: []float64{64, 64}}
			Expect(p.Vector(30, "Grid", param.IVec2, spec)).To(Succeed())

			Expect(tree.Input(panel.ComponentID(30, 0), "17")).To(Succeed())
			Expect(store.writes).To(Equal([]param.Write{{Code: 30, Kind: param.KindIVec, N: 2, Index: 0, Int: 17}}))
			Expect(tree.Labels()).To(Equal([]string{"Grid = (17,4)"}))
		})

		It("does not share the seed slice with the caller", func() {
			seed := origin.Clone()
			Expect(p.Vector(20, "Origin", param.Vec3, seed)).To(Succeed())
			Expect(tree.Input(panel.ComponentID(20, 0), "4")).To(Succeed())
			Expect(seed.Value).To(Equal([]float64{0, 0, 0}))
		})

		It("fails on mismatched spec lengths before drawing", func() {
			bad := origin.Clone()
			bad.Step = []float64{0.5}
			err := p.Vector(20, "Origin", param.Vec3, bad)
			Expect(err).To(MatchError(param.ErrDimensionMismatch))
			Expect(tree.Elements()).To(BeEmpty())
		})

		It("refuses a second group under the same label", func() {
			Expect(p.Vector(20, "Origin", param.Vec3, origin)).To(Succeed())
			err := p.Vector(21, "Origin", param.Vec3, origin)
			Expect(err).To(MatchError(param.ErrDuplicateLabel))
		})
	})

	Describe("text entry groups", func() {
		It("writes only the edited index", func() {
			Expect(p.Entries(7, "Expressions", 3)).To(Succeed())

			Expect(tree.Input(panel.EntryID(7, 2), "hello")).To(Succeed())

			Expect(store.writes).To(Equal([]param.Write{{Code: 7, Kind: param.KindString, Index: 2, Str: "hello"}}))
		})

		It("labels entries by index and addresses them by derived id", func() {
			Expect(p.Entries(7, "Expressions", 3)).To(Succeed())
			Expect(tree.Labels()).To(Equal([]string{"Expressions", "0", "1", "2"}))

			for i := 0; i < 3; i++ {
				e, err := tree.Element(panel.EntryID(7, i))
				Expect(err).NotTo(HaveOccurred())
				Expect(e.ID).To(Equal("entry-box-7-" + string(rune('0'+i))))
				Expect(e.Value).To(BeEmpty())
			}
		})

		It("accepts arbitrary text including empty", func() {
			Expect(p.Entries(7, "Expressions", 2)).To(Succeed())
			Expect(tree.Input(panel.EntryID(7, 0), "not a number")).To(Succeed())
			Expect(tree.Input(panel.EntryID(7, 0), "")).To(Succeed())

			Expect(store.writes).To(HaveLen(2))
			Expect(store.writes[1].Str).To(BeEmpty())
		})
	})

	Describe("Assemble", func() {
		It("fails fast on a bad definition without drawing anything", func() {
			defs := []param.Def{
				param.ScalarDef(0, "Steps/frame", param.Int, param.Spec{Value: 10, Max: 100}),
				{Code: 1, Label: "Bad", Type: param.Vec2, Value: param.Values{0, 0}, Min: param.Values{0}, Max: param.Values{1, 1}},
			}
			err := p.Assemble(defs)

			var ce *param.ConfigError
			Expect(err).To(BeAssignableToTypeOf(ce))
			Expect(err).To(MatchError(param.ErrDimensionMismatch))
			Expect(tree.Elements()).To(BeEmpty())
			Expect(p.Len()).To(BeZero())
		})

		It("rejects duplicate codes", func() {
			defs := []param.Def{
				param.BoolDef(3, "A", true),
				param.BoolDef(3, "B", false),
			}
			Expect(p.Assemble(defs)).To(MatchError(param.ErrDuplicateCode))
		})

		It("reports writes through the observer hook", func() {
			var seen []string
			p = panel.New(store, tree, panel.WithOnWrite(func(w param.Write) { seen = append(seen, w.String()) }))
			Expect(p.Assemble([]param.Def{param.EntriesDef(7, "Names", 3)})).To(Succeed())

			Expect(tree.Input(panel.EntryID(7, 2), "hello")).To(Succeed())
			Expect(seen).To(Equal([]string{`set_string_param(7, 2, "hello")`}))
			Expect(store.writes).To(HaveLen(1))
		})
	})
})
