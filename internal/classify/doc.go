// SPDX-License-Identifier: MPL-2.0

// Package classify walks a texture tree and partitions its files into the
// pools that are shuffled independently.
//
// A directory belongs to the first configured compatibility group that lists
// it; a directory no group lists forms a singleton pool of its own. Group
// membership is not inherited: listing "block" does not claim "block/stone".
// Excluded directories prune the walk.
package classify
