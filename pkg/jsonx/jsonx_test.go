package jsonx_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/kagi/pkg/jsonx"
)

type sample struct {
	Text string `json:"text"`
	ID   string `json:"id"`
}

var _ = Describe("DecodeFirst", func() {
	It("decodes a plain object", func() {
		var s sample
		Expect(jsonx.DecodeFirst(`{"text":"hi","id":"1"}`, &s)).To(Succeed())
		Expect(s).To(Equal(sample{Text: "hi", ID: "1"}))
	})

	It("ignores trailing garbage after the first value", func() {
		var s sample
		Expect(jsonx.DecodeFirst(`{"text":"hi","id":"1"} trailing <junk>`, &s)).To(Succeed())
		Expect(s.Text).To(Equal("hi"))
	})

	It("ignores a second document", func() {
		var s sample
		Expect(jsonx.DecodeFirst("{\"text\":\"a\"}\n{\"text\":\"b\"}", &s)).To(Succeed())
		Expect(s.Text).To(Equal("a"))
	})

	It("fails on malformed JSON", func() {
		var s sample
		Expect(jsonx.DecodeFirst(`{"text":`, &s)).NotTo(Succeed())
	})

	It("fails on an empty payload", func() {
		var s sample
		Expect(jsonx.DecodeFirst("  ", &s)).To(MatchError(jsonx.ErrEmpty))
	})
})

var _ = Describe("Object", func() {
	It("returns the fields of an object", func() {
		obj, ok := jsonx.Object(`{"a":1,"b":"x"}`)
		Expect(ok).To(BeTrue())
		Expect(obj).To(HaveKey("a"))
		Expect(string(obj["b"])).To(Equal(`"x"`))
	})

	It("rejects non-objects", func() {
		_, ok := jsonx.Object(`[1,2]`)
		Expect(ok).To(BeFalse())

		_, ok = jsonx.Object(`null`)
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("DecodeReader", func() {
	It("decodes the first value of a reader", func() {
		var s sample
		Expect(jsonx.DecodeReader(strings.NewReader(`{"id":"7"} extra`), &s)).To(Succeed())
		Expect(s.ID).To(Equal("7"))
	})

	It("reports an empty body", func() {
		var s sample
		Expect(jsonx.DecodeReader(strings.NewReader(""), &s)).To(MatchError(jsonx.ErrEmpty))
	})
})

var _ = Describe("Record", func() {
	It("reads fields of the first object and tolerates trailing bytes", func() {
		rec, ok := jsonx.Record(`{"n":5.0,"s":"x","b":true} junk`)
		Expect(ok).To(BeTrue())
		Expect(jsonx.Int(rec.Get("n"))).To(Equal(5))
		Expect(jsonx.Float(rec.Get("n"))).To(BeNumerically("==", 5))
		Expect(jsonx.String(rec.Get("s"))).To(Equal("x"))
		Expect(*jsonx.OptBool(rec.Get("b"))).To(BeTrue())
	})

	It("rejects malformed payloads and non-objects", func() {
		_, ok := jsonx.Record(`{"n":`)
		Expect(ok).To(BeFalse())
		_, ok = jsonx.Record(`[1,2]`)
		Expect(ok).To(BeFalse())
	})

	It("falls back to defaults for fields of the wrong type", func() {
		rec, _ := jsonx.Record(`{"n":"five","s":3,"b":"yes"}`)
		Expect(jsonx.Int(rec.Get("n"))).To(Equal(0))
		Expect(jsonx.String(rec.Get("s"))).To(Equal(""))
		Expect(jsonx.OptInt(rec.Get("n"))).To(BeNil())
		Expect(jsonx.OptString(rec.Get("s"))).To(BeNil())
		Expect(jsonx.OptBool(rec.Get("b"))).To(BeNil())
		Expect(jsonx.OptFloat(rec.Get("missing"))).To(BeNil())
	})
})
