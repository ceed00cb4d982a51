package common

import (
	stdmath "math"
	"testing"

	. "gopkg.in/check.v1"
)

func TestMath(t *testing.T) {
	TestingT(t)
}

type MathSuite struct{}

var _ = Suite(&MathSuite{})

func (s *MathSuite) TestMax(c *C) {
	c.Assert(Max(1, 2), Equals, 2)
	c.Assert(Max(2, 1), Equals, 2)
	c.Assert(Max(1, 1), Equals, 1)

	c.Assert(Max(uint64(1), uint64(2)), Equals, uint64(2))
	c.Assert(Max(int64(-1), int64(-2)), Equals, int64(-1))
}

func (s *MathSuite) TestMin(c *C) {
	c.Assert(Min(1, 2), Equals, 1)
	c.Assert(Min(2, 1), Equals, 1)
	c.Assert(Min(1, 1), Equals, 1)

	c.Assert(Min(uint64(1), uint64(2)), Equals, uint64(1))
	c.Assert(Min(int64(-1), int64(-2)), Equals, int64(-2))
}

func (s *MathSuite) TestSafeAdd(c *C) {
	sum, err := SafeAdd(1, 2)
	c.Assert(err, IsNil)
	c.Assert(sum, Equals, uint64(3))

	sum, err = SafeAdd(stdmath.MaxUint64-1, 1)
	c.Assert(err, IsNil)
	c.Assert(sum, Equals, uint64(stdmath.MaxUint64))

	_, err = SafeAdd(stdmath.MaxUint64, 1)
	c.Assert(err, NotNil)
}

func (s *MathSuite) TestSafeSub(c *C) {
	diff, err := SafeSub(100, 50)
	c.Assert(err, IsNil)
	c.Assert(diff, Equals, uint64(50))

	diff, err = SafeSub(50, 50)
	c.Assert(err, IsNil)
	c.Assert(diff, Equals, uint64(0))

	_, err = SafeSub(50, 51)
	c.Assert(err, NotNil)
}

func (s *MathSuite) TestSafeMul(c *C) {
	p, err := SafeMul(1<<16, 1<<32)
	c.Assert(err, IsNil)
	c.Assert(p, Equals, uint64(1<<48))

	_, err = SafeMul(1<<32, 1<<32)
	c.Assert(err, NotNil)
}
