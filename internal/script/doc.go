// Package script reads the frame scripts and configuration of the
// gsgreplay command.
//
// A script is a TOML document listing requested attribute states, one
// [[frame]] table per frame, and the textures the frames bind. Keys of a
// frame table are attribute names in snake case (blend, color,
// color_write, cull_face, depth_test, depth_write, texture0 ...).
package script
