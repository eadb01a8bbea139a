/*
Package body decodes HTTP request payloads for the gateway.

A [Decoder] handles the four gw.BodyMode values: json, text, urlencoded and raw.
Each mode only decodes requests whose Content-Type matches its media types,
application/json, text/plain, application/x-www-form-urlencoded and application/octet-stream by default,
and caps the body at [DefaultLimit] bytes unless configured otherwise.
*/
package body
