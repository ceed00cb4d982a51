package keeper

import (
	"github.com/btcq-org/ctoken/common"
	"github.com/btcq-org/ctoken/x/ctoken/types"
)

func (k Keeper) getUninitialized(store KVStore, addr common.Address) (*types.Account, error) {
	acct, err := k.GetAccount(store, addr)
	if err != nil {
		return nil, err
	}
	if !acct.IsUninitialized() {
		return nil, types.ErrInvalidAccountKind.Wrapf("%s is already initialized as %s", addr, acct.Kind)
	}
	return acct, nil
}

func (k Keeper) handleMsgInitializeMint(store KVStore, msg *types.MsgInitializeMint) error {
	acct, err := k.getUninitialized(store, msg.Mint)
	if err != nil {
		return err
	}
	mint := &types.Mint{
		MintAuthority:          msg.MintAuthority,
		Decimals:               msg.Decimals,
		AutoApproveNewAccounts: msg.AutoApproveNewAccounts,
		AuditorPubkey:          msg.AuditorPubkey,
	}
	if err := acct.SetData(types.AccountKindMint, mint); err != nil {
		return err
	}
	return k.SetAccount(store, acct)
}

func (k Keeper) handleMsgInitializeAccount(store KVStore, msg *types.MsgInitializeAccount) error {
	if _, _, err := k.getMint(store, msg.Mint); err != nil {
		return err
	}
	acct, err := k.getUninitialized(store, msg.Account)
	if err != nil {
		return err
	}
	return k.setToken(store, acct, &types.TokenAccount{
		Mint:  msg.Mint,
		Owner: msg.Owner,
	})
}
