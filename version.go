package codevf

// Version is reported in the User-Agent header on every request.
const Version = "0.1.0"
