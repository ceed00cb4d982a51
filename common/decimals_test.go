package common

import (
	"cosmossdk.io/math"
	. "gopkg.in/check.v1"
)

type DecimalsSuite struct{}

var _ = Suite(&DecimalsSuite{})

func (s *DecimalsSuite) TestScaleAmount(c *C) {
	units, err := ScaleAmount(math.LegacyNewDec(100), 6)
	c.Assert(err, IsNil)
	c.Assert(units, Equals, uint64(100_000_000))

	units, err = ScaleAmount(math.LegacyMustNewDecFromStr("1.5"), 2)
	c.Assert(err, IsNil)
	c.Assert(units, Equals, uint64(150))

	units, err = ScaleAmount(math.LegacyMustNewDecFromStr("0.000001"), 6)
	c.Assert(err, IsNil)
	c.Assert(units, Equals, uint64(1))

	units, err = ScaleAmount(math.LegacyZeroDec(), 9)
	c.Assert(err, IsNil)
	c.Assert(units, Equals, uint64(0))

	units, err = ScaleAmount(math.LegacyNewDec(42), 0)
	c.Assert(err, IsNil)
	c.Assert(units, Equals, uint64(42))
}

func (s *DecimalsSuite) TestScaleAmountErrors(c *C) {
	_, err := ScaleAmount(math.LegacyNewDec(-1), 6)
	c.Assert(err, NotNil)

	// more precision than the mint allows
	_, err = ScaleAmount(math.LegacyMustNewDecFromStr("0.0000001"), 6)
	c.Assert(err, NotNil)

	_, err = ScaleAmount(math.LegacyNewDec(1), 19)
	c.Assert(err, NotNil)

	// 2^64 base units
	_, err = ScaleAmount(math.LegacyMustNewDecFromStr("18446744073709.551616"), 6)
	c.Assert(err, NotNil)

	_, err = ScaleAmount(math.LegacyDec{}, 6)
	c.Assert(err, NotNil)
}

func (s *DecimalsSuite) TestUnscaleAmount(c *C) {
	c.Assert(UnscaleAmount(100_000_000, 6).Equal(math.LegacyNewDec(100)), Equals, true)
	c.Assert(UnscaleAmount(150, 2).String(), Equals, math.LegacyMustNewDecFromStr("1.5").String())
	c.Assert(UnscaleAmount(0, 6).IsZero(), Equals, true)

	units, err := ScaleAmount(UnscaleAmount(123_456_789, 6), 6)
	c.Assert(err, IsNil)
	c.Assert(units, Equals, uint64(123_456_789))
}

func (s *DecimalsSuite) TestParseAmount(c *C) {
	units, err := ParseAmount("50", 6)
	c.Assert(err, IsNil)
	c.Assert(units, Equals, uint64(50_000_000))

	_, err = ParseAmount("fifty", 6)
	c.Assert(err, NotNil)
}
