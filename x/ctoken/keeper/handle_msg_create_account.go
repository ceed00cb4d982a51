package keeper

import (
	"errors"

	"github.com/btcq-org/ctoken/x/ctoken/types"
)

func (k Keeper) handleMsgCreateAccount(store KVStore, msg *types.MsgCreateAccount) error {
	if _, err := k.GetAccount(store, msg.NewAccount); err == nil {
		return types.ErrAccountAlreadyExists.Wrapf("%s", msg.NewAccount)
	} else if !errors.Is(err, types.ErrAccountNotFound) {
		return err
	}
	if rent := types.RentExemptMinimum(msg.Space); msg.Lamports < rent {
		return types.ErrInsufficientRent.Wrapf("%d bytes need %d lamports, got %d", msg.Space, rent, msg.Lamports)
	}

	from, err := k.GetAccount(store, msg.From)
	if err != nil {
		return err
	}
	if from.Lamports < msg.Lamports {
		return types.ErrInsufficientLamports.Wrapf("%s has %d, needs %d", msg.From, from.Lamports, msg.Lamports)
	}
	from.Lamports -= msg.Lamports
	if err := k.SetAccount(store, from); err != nil {
		return err
	}
	return k.SetAccount(store, &types.Account{
		Address:  msg.NewAccount,
		Lamports: msg.Lamports,
		Space:    msg.Space,
		Kind:     types.AccountKindSystem,
	})
}
