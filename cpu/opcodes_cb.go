package cpu

// executeCB dispatches a $CB-prefixed opcode. All four sub-blocks share
// the same register field (bits 0-2) and, for BIT/RES/SET, the same bit
// index field (bits 3-5), so they decode by field rather than as 256
// spelled-out cases.
func (c *CPU) executeCB(opcode byte) int {
	r := opcode & 0x07
	group := (opcode >> 3) & 0x07
	isHL := r == 6

	switch {
	case opcode < 0x40: // RLC/RRC/RL/RR/SLA/SRA/SWAP/SRL
		v := c.reg8(r)
		var result byte
		switch group {
		case 0:
			result = c.rlc(v)
		case 1:
			result = c.rrc(v)
		case 2:
			result = c.rl(v)
		case 3:
			result = c.rr(v)
		case 4:
			result = c.sla(v)
		case 5:
			result = c.sra(v)
		case 6:
			result = c.swap(v)
		default:
			result = c.srl(v)
		}
		c.setReg8(r, result)
		if isHL {
			return 16
		}
		return 8

	case opcode < 0x80: // BIT n,r
		c.bitTest(group, c.reg8(r))
		if isHL {
			return 12
		}
		return 8

	case opcode < 0xC0: // RES n,r
		c.setReg8(r, resetBit(group, c.reg8(r)))
		if isHL {
			return 16
		}
		return 8

	default: // SET n,r
		c.setReg8(r, setBit(group, c.reg8(r)))
		if isHL {
			return 16
		}
		return 8
	}
}
