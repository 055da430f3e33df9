package 围碁

import (
	"fmt"

	"github.com/gorgonia/kifu/game"
)

type sizeError int

func (err sizeError) Error() string {
	return fmt.Sprintf("Unable to make a board of size %d. Sizes must be between 1 and %d", int(err), game.MaxBoardSize)
}
