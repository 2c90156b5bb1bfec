package tree

import (
	"errors"
	"fmt"

	"github.com/dendrascience/filetree/util"
	"go.uber.org/zap"
)

// Inspect walks every chain under root without decoding it and checks the
// invariants the encoder guarantees: validated bucket prefixes, no regular
// files, no branching below the root, well-formed names, and chain depths
// that never grow with the bucket index and differ by at most one.
func Inspect(root string, opts ...Option) (info util.TreeInfo, err error) {
	o := newOptions(opts)

	chains, err := openLevelOne(root, util.BigEndian, o.width)
	if err != nil {
		return info, err
	}
	defer func() {
		err = errors.Join(err, closeChains(chains))
	}()

	names := make([]string, len(chains))
	for b := range chains {
		names[b] = chains[b].name
	}
	info = util.TreeInfo{
		FiletreeVersion: util.GetVersion(),
		Tag:             util.TreeTag(names),
		Width:           len(chains),
		ChainDepths:     make([]int, len(chains)),
	}

	for b := range chains {
		c := &chains[b]
		for {
			if err := tally(&info, c.name, c.depth == 1); err != nil {
				return info, err
			}
			more, err := c.descend()
			if err != nil {
				return info, err
			}
			if !more {
				break
			}
		}
		info.ChainDepths[b] = c.depth
		o.log.Debug("chain inspected", zap.Int("bucket", b), zap.Int("depth", c.depth))
	}

	if err := checkDepths(info.ChainDepths); err != nil {
		return info, err
	}
	if o.width > 0 && len(chains) < o.width && info.MaxDepth() > 1 {
		return info, fmt.Errorf("%w: %d chains for width %d but chains are %d deep",
			util.ErrMalformedTree, len(chains), o.width, info.MaxDepth())
	}
	return info, nil
}

func tally(info *util.TreeInfo, name string, levelOne bool) error {
	_, payload, err := util.DecodeName(name, levelOne, util.BigEndian)
	if err != nil {
		return err
	}
	info.Nodes++
	info.PayloadSize += int64(len(payload))
	info.LongestName = max(info.LongestName, len(name))
	return nil
}

// checkDepths enforces depth(b) = ceil((N-b)/W): non-increasing, spread <= 1.
func checkDepths(depths []int) error {
	for b := 1; b < len(depths); b++ {
		if depths[b] > depths[b-1] {
			return fmt.Errorf("%w: chain %d is %d deep but chain %d only %d",
				util.ErrMalformedTree, b, depths[b], b-1, depths[b-1])
		}
	}
	if len(depths) > 0 && depths[0]-depths[len(depths)-1] > 1 {
		return fmt.Errorf("%w: chain depths range from %d to %d",
			util.ErrMalformedTree, depths[len(depths)-1], depths[0])
	}
	return nil
}
