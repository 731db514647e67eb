package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/regvm/io"
)

func FuzzCpu(f *testing.F) {
	for _, a := range []int64{0, 1, -1, 1<<63 - 1, -1 << 63} {
		f.Add(a, int64(3), uint8(0), uint8(1))
		f.Add(a, a, uint8(2), uint8(2))
	}

	f.Fuzz(func(t *testing.T, a int64, b int64, ra uint8, rb uint8) {
		assert := assert.New(t)

		// Keep clear of ip.
		x := Register(ra % 14)
		y := Register(rb % 14)

		program := []Instruction{
			Cp{Src: Literal(a), Tgt: x},
			Cp{Src: Literal(b), Tgt: y},
			Add{Src1: x, Src2: y, Tgt: x},
			Cp{Src: Literal(a), Tgt: x},
			Cp{Src: Literal(b), Tgt: y},
			Mul{Src1: x, Src2: y, Tgt: y},
			Cp{Src: Literal(a), Tgt: x},
			Cp{Src: Literal(b), Tgt: y},
			Sub{Src1: x, Src2: y, Tgt: 14},
			Store{Src: Register(14), Addr: Literal(0)},
			Load{Addr: Literal(0), Tgt: 14},
			Jump{Cond: COND_ZERO, Src: Register(14), Addr: Literal(13)},
			Jump{Cond: COND_POS, Src: Register(14), Addr: Literal(15)},
			Write{Src: Register(14)},
			Jump{Cond: COND_ZERO, Src: Literal(0), Addr: Literal(16)},
			Write{Src: Literal(1)},
		}

		// Source values as seen by each ALU op.
		src := func(reg Register) int64 {
			if x == y {
				return b
			}
			if reg == x {
				return a
			}
			return b
		}

		cpu := NewCpu(4)
		cpu.Reset(program)
		out := io.NewQueue(4)
		cpu.Output = out

		for range 3 {
			_, err := cpu.Step()
			assert.NoError(err)
		}
		assert.Equal(src(x)+src(y), cpu.Register[x])

		for range 3 {
			_, err := cpu.Step()
			assert.NoError(err)
		}
		assert.Equal(src(x)*src(y), cpu.Register[y])

		assert.NoError(cpu.Run())
		diff := src(x) - src(y)
		assert.Equal(diff, cpu.Register[14])
		assert.Equal(diff, cpu.Memory.Data[0])

		switch {
		case diff == 0:
			assert.Equal([]int64{0}, out.Values())
		case diff > 0:
			assert.Equal([]int64{1}, out.Values())
		default:
			assert.Equal([]int64{diff}, out.Values())
		}
	})
}
