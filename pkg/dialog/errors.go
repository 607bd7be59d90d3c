package dialog

import (
	"errors"

	mwcerrors "github.com/vango-dev/mwc/internal/errors"
)

var (
	// ErrUseBeforeMount is returned by Handle methods when no native node
	// has been captured yet.
	ErrUseBeforeMount = errors.New("dialog: used before mount")

	// ErrUseAfterUnmount is returned by Handle methods once the dialog has
	// been unmounted.
	ErrUseAfterUnmount = errors.New("dialog: used after unmount")
)

func useBeforeMount(method string) error {
	return mwcerrors.New("M101").WithDetail(method + " on <" + Tag + ">").Wrap(ErrUseBeforeMount)
}

func useAfterUnmount(method string) error {
	return mwcerrors.New("M102").WithDetail(method + " on <" + Tag + ">").Wrap(ErrUseAfterUnmount)
}

func callFailed(method string, err error) error {
	return mwcerrors.New("M103").WithDetail(method + " on <" + Tag + ">").Wrap(err)
}
