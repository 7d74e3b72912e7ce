// Package testsupport provides shared test fixtures, chiefly a scripted
// fake wpa_supplicant control socket that tests dial like the real daemon.
package testsupport
