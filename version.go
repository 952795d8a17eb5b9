package tuteliq

// Version is the SDK version reported in the User-Agent header.
const Version = "1.2.0"
