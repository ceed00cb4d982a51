package keeper

import (
	"github.com/btcq-org/ctoken/common"
	"github.com/btcq-org/ctoken/x/ctoken/types"
)

func (k Keeper) handleMsgMintTo(store KVStore, msg *types.MsgMintTo) error {
	mintAcct, mint, err := k.getMint(store, msg.Mint)
	if err != nil {
		return err
	}
	if !mint.MintAuthority.Equals(msg.Authority) {
		return types.ErrUnauthorized.Wrapf("%s is not the mint authority", msg.Authority)
	}
	acct, token, err := k.getToken(store, msg.Account, msg.Mint)
	if err != nil {
		return err
	}

	supply, err := common.SafeAdd(mint.Supply, msg.Amount)
	if err != nil {
		return types.ErrOverflow.Wrap(err.Error())
	}
	amount, err := common.SafeAdd(token.Amount, msg.Amount)
	if err != nil {
		return types.ErrOverflow.Wrap(err.Error())
	}
	mint.Supply = supply
	token.Amount = amount

	if err := mintAcct.SetData(types.AccountKindMint, mint); err != nil {
		return err
	}
	if err := k.SetAccount(store, mintAcct); err != nil {
		return err
	}
	return k.setToken(store, acct, token)
}
