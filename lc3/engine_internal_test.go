package lc3

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Condition", func() {
	// Every condition mask against every flag sign. A condition matches
	// exactly when the flag's sign is a member of its set; the empty mask
	// is the unconditional branch and matches everything.
	type signSet struct {
		neg, zero, pos bool
	}

	matrix := map[Condition]signSet{
		COND_ALWAYS: {true, true, true},
		COND_P:      {false, false, true},
		COND_Z:      {false, true, false},
		COND_ZP:     {false, true, true},
		COND_N:      {true, false, false},
		COND_NP:     {true, false, true},
		COND_NZ:     {true, true, false},
		COND_NZP:    {true, true, true},
	}

	It("matches each flag sign per its member set", func() {
		for cond, set := range matrix {
			Expect(cond.Matches(-1)).To(Equal(set.neg), "%v vs negative", cond)
			Expect(cond.Matches(-32768)).To(Equal(set.neg), "%v vs most negative", cond)
			Expect(cond.Matches(0)).To(Equal(set.zero), "%v vs zero", cond)
			Expect(cond.Matches(1)).To(Equal(set.pos), "%v vs positive", cond)
			Expect(cond.Matches(32767)).To(Equal(set.pos), "%v vs most positive", cond)
		}
	})

	It("drives branches per the matrix", func() {
		for cond, set := range matrix {
			for flag, member := range map[int16]bool{-1: set.neg, 0: set.zero, 1: set.pos} {
				prog := &Program{}
				syms := NewSymbolTable()
				inst, err := MakeBranch(cond, "target")
				Expect(err).ToNot(HaveOccurred())
				prog.Append(inst)
				syms.BindPosition("target", 7)

				mach := NewMachine()
				mach.Flag = flag
				Expect(mach.Step(prog, syms)).To(Succeed())

				if member {
					Expect(mach.Pc).To(Equal(7), "%v taken on flag %v", cond, flag)
				} else {
					Expect(mach.Pc).To(Equal(1), "%v fallthrough on flag %v", cond, flag)
				}
			}
		}
	})
})

var _ = Describe("Arithmetic", func() {
	run := func(inst Instruction, r1, r2 int16) *Machine {
		GinkgoHelper()

		prog := &Program{}
		prog.Append(inst)
		mach := NewMachine()
		mach.Register[R1] = r1
		mach.Register[R2] = r2
		Expect(mach.Step(prog, NewSymbolTable())).To(Succeed())
		return mach
	}

	It("wraps addition two's-complement", func() {
		inst, err := MakeAddReg(R0, R1, R2)
		Expect(err).ToNot(HaveOccurred())

		pairs := [][2]int16{
			{0, 0}, {1, -1}, {32767, 1}, {-32768, -1},
			{32767, 32767}, {-32768, -32768}, {12345, 23456}, {-20000, -20000},
		}
		for _, pair := range pairs {
			mach := run(inst, pair[0], pair[1])
			expect := int16(int32(pair[0]) + int32(pair[1])) // wrapped
			Expect(mach.Register[R0]).To(Equal(expect))
			Expect(mach.Flag).To(Equal(expect))
		}
	})

	It("ANDs the 16-bit representations", func() {
		inst, err := MakeAndReg(R0, R1, R2)
		Expect(err).ToNot(HaveOccurred())

		pairs := [][2]int16{
			{0, 0}, {-1, -1}, {-1, 0x5a5a}, {0x0ff0, 0x00ff}, {-32768, -1},
		}
		for _, pair := range pairs {
			mach := run(inst, pair[0], pair[1])
			Expect(mach.Register[R0]).To(Equal(pair[0] & pair[1]))
			Expect(mach.Flag).To(Equal(pair[0] & pair[1]))
		}
	})

	It("complements the 16-bit representation", func() {
		inst, err := MakeNot(R0, R1)
		Expect(err).ToNot(HaveOccurred())

		for _, value := range []int16{0, -1, 1, 32767, -32768, 0x5a5a} {
			mach := run(inst, value, 0)
			Expect(mach.Register[R0]).To(Equal(^value))
			Expect(mach.Flag).To(Equal(^value))
		}
	})

	It("derives the flag sign from the stored result", func() {
		inst, err := MakeAddReg(R0, R1, R2)
		Expect(err).ToNot(HaveOccurred())

		// 0x4000 + 0x4000 overflows positive into negative.
		mach := run(inst, 0x4000, 0x4000)
		Expect(mach.Register[R0]).To(Equal(int16(-0x8000)))
		Expect(mach.Flag).To(BeNumerically("<", 0))

		mach = run(inst, 0x4000, -0x4000)
		Expect(mach.Flag).To(BeZero())
	})
})
