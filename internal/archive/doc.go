// SPDX-License-Identifier: MPL-2.0

// Package archive packs an unpacked resource pack into the zip file
// Minecraft loads, and reads such archives back.
package archive
