package config

func Decrypt(c *Cipher, encoded string) (string, error) {
	return c.decrypt(encoded)
}
