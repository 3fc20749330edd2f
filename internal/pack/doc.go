// SPDX-License-Identifier: MPL-2.0

// Package pack builds the unpacked resource pack directory: the pack.mcmeta
// descriptor and the assets/minecraft/textures tree that shuffled textures
// are copied into.
package pack
