package norrisbot

// VERSION holds the current norrisbot version
const VERSION = "1.0.0"
