package common

import (
	"bytes"
	"encoding/json"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	. "gopkg.in/check.v1"
)

type AddressSuite struct{}

var _ = Suite(&AddressSuite{})

func testAddress(seed byte) (*btcec.PrivateKey, Address) {
	priv, _ := btcec.PrivKeyFromBytes(bytes.Repeat([]byte{seed}, 32))
	addr, err := BytesToAddress(schnorr.SerializePubKey(priv.PubKey()))
	if err != nil {
		panic(err)
	}
	return priv, addr
}

func (s *AddressSuite) TestAddress(c *C) {
	_, addr := testAddress(1)
	c.Assert(addr.IsEmpty(), Equals, false)

	parsed, err := NewAddress(addr.String())
	c.Assert(err, IsNil)
	c.Assert(parsed.Equals(addr), Equals, true)
	c.Assert(parsed.Hex(), Equals, addr.Hex())

	_, err = NewAddress("")
	c.Assert(err, NotNil)
	_, err = NewAddress("1111")
	c.Assert(err, NotNil)
	_, err = NewAddress("0OIl")
	c.Assert(err, NotNil)

	_, err = BytesToAddress([]byte{1, 2, 3})
	c.Assert(err, NotNil)

	c.Assert(NoAddress.IsEmpty(), Equals, true)
	c.Assert(NoAddress.String(), Equals, "")
}

func (s *AddressSuite) TestAddressJSON(c *C) {
	_, addr := testAddress(2)
	type wrapper struct {
		Owner Address `json:"owner"`
	}
	buf, err := json.Marshal(wrapper{Owner: addr})
	c.Assert(err, IsNil)
	c.Assert(string(buf), Equals, `{"owner":"`+addr.String()+`"}`)

	var out wrapper
	c.Assert(json.Unmarshal(buf, &out), IsNil)
	c.Assert(out.Owner, Equals, addr)

	c.Assert(json.Unmarshal([]byte(`{"owner":"bogus"}`), &out), NotNil)
}

func (s *AddressSuite) TestAddresses(c *C) {
	_, a := testAddress(3)
	_, b := testAddress(4)
	addrs := Addresses{a, b, a}
	c.Assert(addrs.Has(b), Equals, true)
	c.Assert(addrs.Distinct(), DeepEquals, Addresses{a, b})
	c.Assert(addrs.Strings()[1], Equals, b.String())
}

func (s *AddressSuite) TestVerifySignature(c *C) {
	priv, addr := testAddress(5)
	_, other := testAddress(6)
	msg := []byte("hello ledger")
	digest := SignatureDigest(msg)
	sig, err := schnorr.Sign(priv, digest[:])
	c.Assert(err, IsNil)

	c.Assert(VerifySignature(addr, msg, sig.Serialize()), Equals, true)
	c.Assert(VerifySignature(other, msg, sig.Serialize()), Equals, false)
	c.Assert(VerifySignature(addr, []byte("tampered"), sig.Serialize()), Equals, false)
	c.Assert(VerifySignature(addr, msg, []byte{1, 2}), Equals, false)
}

func (s *AddressSuite) TestHash(c *C) {
	var h Hash
	h[0] = 7
	parsed, err := NewHash(h.String())
	c.Assert(err, IsNil)
	c.Assert(parsed, Equals, h)
	c.Assert(EmptyHash.IsEmpty(), Equals, true)
	_, err = NewHash("abc")
	c.Assert(err, NotNil)
}
