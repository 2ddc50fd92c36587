package frameseq

// Command descriptions
const (
	MsgRootShort = "Keep stop-motion frame sequences contiguous"
	MsgRootLong  = `frameseq renames the frames of a stop-motion capture directory into a
contiguous, zero-padded sequence and keeps a bound sequence in step with
frames captured since it was bound.`

	MsgResequenceShort = "Rename the dominant image type of a directory into a sequence"
	MsgResequenceLong  = `Resequence picks the dominant image extension of DIR (png wins over
jpg+jpeg only when it strictly outnumbers them), sorts those files by name
and renames them to <prefix><index><ext> with a zero-padded index.

Without DIR the directory of the bound sequence is used.`
	MsgBindShort = "Bind a frame sequence"
	MsgBindLong  = `Bind records a directory and its frames as the active sequence. Without
FRAME arguments the dominant image set of DIR is bound. Without DIR the
configured project root is used.`
	MsgRefreshShort    = "Append newly captured frames to the bound sequence"
	MsgWatchShort      = "Refresh the bound sequence continuously"
	MsgStatusShort     = "Show the bound sequence"
	MsgConfigShort     = "Print the effective configuration"
	MsgGuideShort      = "Read a usage guide"
	MsgCompletionShort = "Generate shell completion script"
	MsgVersionTemplate = "frameseq version {{.Version}}\n"
)

// Flag descriptions
const (
	MsgFlagVerbose    = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFormat     = "Output format: auto, text, term or json"
	MsgFlagConfig     = "Config file (default is $XDG_CONFIG_HOME/frameseq/config.toml)"
	MsgFlagBinding    = "Binding file (default is $XDG_DATA_HOME/frameseq/binding.toml)"
	MsgFlagDryRun     = "Show the renames without touching any file"
	MsgFlagPadding    = "Width of the zero-padded frame index"
	MsgFlagStart      = "Index of the first frame"
	MsgFlagStrict     = "Fail when png and jpg files are tied"
	MsgFlagNoRollback = "Keep renames already applied when a later one fails"
	MsgFlagBind       = "Bind the renamed sequence"
	MsgFlagClear      = "Remove the current binding"
	MsgFlagInterval   = "Interval between refreshes"
	MsgFlagNoFsnotify = "Poll only, do not watch filesystem events"
	MsgFlagTemplate   = "Print a commented config file to start from"
)

// Status messages
const (
	MsgEmptyFrameList = "The bound sequence has no frames, nothing to refresh"
	MsgBound          = "Bound %d frames of %s"
	MsgBindingCleared = "Binding cleared"
	MsgBindingUpdated = "Binding updated"
	MsgWatching       = "Watching %s, press Ctrl-C to stop"
	MsgWatchStopped   = "Stopped watching"
	MsgConfigSources  = "# merged from: %s"
)

// Error messages
const (
	MsgErrNoCommand    = "no command specified"
	MsgErrFrameMissing = "frame %q does not exist in %s"
)
