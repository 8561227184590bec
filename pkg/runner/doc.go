/*
Package runner implements the I/O side of a play loop: how frames reach the
player and how the player's answers come back.

# Key Components

  - IOHandler: decouples the play loop from the transport.
  - TextHandler: menus and prompts for interactive terminals and scripts.
  - JSONHandler: one JSON object per line, for hosts driving fable as a subprocess.
  - SanitizeInput: size, encoding and control-character checks for player input.

The loop itself lives in the root fable package (fable.Runner).
*/
package runner
